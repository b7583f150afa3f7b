// Package memory is the default record backend: a mutex-guarded, append-only
// slice scoped to the server's lifetime. Nothing is persisted.
package memory

import (
	"context"
	"fmt"
	"sync"

	"spendview/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Receipt
}

func New() *Store {
	return &Store{}
}

// Append validates and stores the batch. A batch with an invalid record is
// rejected whole; under normal operation the generator never produces one.
func (s *Store) Append(_ context.Context, recs []core.Receipt) error {
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("receipt %s: %w", r.ID, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, recs...)
	return nil
}

// List returns a copy of the current collection in insertion order.
func (s *Store) List(_ context.Context) ([]core.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Receipt, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}
