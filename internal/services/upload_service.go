// Package services orchestrates the upload-to-receipt flow: per-file
// validation, the simulated processing delay, mock extraction, store
// appends, and the optional broker notification.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"spendview/internal/core"
	"spendview/internal/mockextract"
	"spendview/internal/records"
)

// Notifier publishes batch-processed events. *amqp.Client satisfies it; a
// nil Notifier disables publishing.
type Notifier interface {
	PublishBatchProcessed(ctx context.Context, batchID string, receiptCount int) error
}

type (
	// FileRejection reports one file that failed validation.
	FileRejection struct {
		Name   string
		Reason string
	}

	// UploadResult is what the upload surface shows the user: how many files
	// entered processing and which were turned away.
	UploadResult struct {
		BatchID  string
		Accepted int
		Rejected []FileRejection
	}

	batch struct {
		id    string
		files []core.FileMeta
	}
)

// UploadService accepts upload batches and processes them in the background
// after the configured delay.
type UploadService struct {
	store    records.Appender
	gen      *mockextract.Generator
	notifier Notifier
	maxBytes int64
	delay    time.Duration
	queue    chan batch
}

func NewUploadService(store records.Appender, gen *mockextract.Generator, notifier Notifier, maxBytes int64, delay time.Duration) *UploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadService{
		store:    store,
		gen:      gen,
		notifier: notifier,
		maxBytes: maxBytes,
		delay:    delay,
		queue:    make(chan batch, 64),
	}
}

// Submit validates each file and queues the accepted ones as a batch.
// Rejected files are reported individually and never block the rest.
// When nothing survives validation, no batch is created.
func (s *UploadService) Submit(ctx context.Context, files []core.FileMeta) UploadResult {
	var result UploadResult
	accepted := make([]core.FileMeta, 0, len(files))
	for _, f := range files {
		if err := ValidateFile(f, s.maxBytes); err != nil {
			slog.WarnContext(ctx, "Upload file rejected",
				"file", f.Name, "content_type", f.ContentType, "size", f.Size, "error", err)
			result.Rejected = append(result.Rejected, FileRejection{Name: f.Name, Reason: err.Error()})
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) == 0 {
		return result
	}

	b := batch{id: uuid.NewString(), files: accepted}
	result.BatchID = b.id
	result.Accepted = len(accepted)

	select {
	case s.queue <- b:
		slog.InfoContext(ctx, "Upload batch queued",
			"batch_id", b.id, "accepted", result.Accepted, "rejected", len(result.Rejected))
	case <-ctx.Done():
		// request aborted before the batch could be queued
		result.BatchID = ""
		result.Accepted = 0
	}
	return result
}

// Run consumes queued batches until ctx is cancelled, spreading work over
// the given number of workers.
func (s *UploadService) Run(ctx context.Context, workers int) error {
	if workers < 1 {
		workers = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case b := <-s.queue:
					s.handle(ctx, b)
				}
			}
		})
	}
	return g.Wait()
}

// handle waits out the simulated processing delay, fabricates one receipt
// per file, and appends them as a unit.
func (s *UploadService) handle(ctx context.Context, b batch) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}

	recs := make([]core.Receipt, len(b.files))
	for i, f := range b.files {
		recs[i] = s.gen.Generate(f)
	}

	if err := s.store.Append(ctx, recs); err != nil {
		// unreachable under normal operation; kept for symmetry
		slog.ErrorContext(ctx, "Failed to store receipt batch",
			"batch_id", b.id, "count", len(recs), "error", err)
		return
	}

	slog.InfoContext(ctx, "Receipt batch processed",
		"batch_id", b.id, "count", len(recs))

	s.notifyProcessed(ctx, b.id, len(recs))
}

func (s *UploadService) notifyProcessed(ctx context.Context, batchID string, count int) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishBatchProcessed(ctx, batchID, count); err != nil {
		// notification is best-effort; the batch is already stored
		slog.ErrorContext(ctx, "Failed to publish batch notification",
			"batch_id", batchID, "error", err)
	}
}
