package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"spendview/internal/core"
	"spendview/internal/mockextract"
	"spendview/internal/records/memory"
)

type recordingNotifier struct {
	mu      sync.Mutex
	batches []string
	counts  []int
}

func (n *recordingNotifier) PublishBatchProcessed(_ context.Context, batchID string, count int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.batches = append(n.batches, batchID)
	n.counts = append(n.counts, count)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
}

func waitForCount(t *testing.T, store *memory.Store, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n, _ := store.Count(context.Background()); n == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	n, _ := store.Count(context.Background())
	t.Fatalf("store count = %d, want %d", n, want)
}

func TestSubmitValidBatchProducesReceipts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	notifier := &recordingNotifier{}
	svc := NewUploadService(store, mockextract.New(1, fixedNow), notifier, 0, 10*time.Millisecond)
	go func() { _ = svc.Run(ctx, 2) }()

	res := svc.Submit(ctx, []core.FileMeta{
		{Name: "a.jpg", ContentType: "image/jpeg", Size: 100},
		{Name: "b.pdf", ContentType: "application/pdf", Size: 200},
	})
	if res.BatchID == "" || res.Accepted != 2 || len(res.Rejected) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	waitForCount(t, store, 2)

	recs, _ := store.List(ctx)
	names := map[string]bool{}
	for _, r := range recs {
		if err := r.Validate(); err != nil {
			t.Errorf("stored receipt invalid: %v", err)
		}
		names[r.FileName] = true
	}
	if !names["a.jpg"] || !names["b.pdf"] {
		t.Errorf("file names not carried into receipts: %v", names)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.batches) != 1 || notifier.batches[0] != res.BatchID || notifier.counts[0] != 2 {
		t.Errorf("notifier calls: %v %v", notifier.batches, notifier.counts)
	}
}

func TestSubmitRejectionsDoNotBlockBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	svc := NewUploadService(store, mockextract.New(1, fixedNow), nil, 0, 0)
	go func() { _ = svc.Run(ctx, 1) }()

	res := svc.Submit(ctx, []core.FileMeta{
		{Name: "ok.png", ContentType: "image/png", Size: 100},
		{Name: "bad.zip", ContentType: "application/zip", Size: 100},
		{Name: "huge.jpg", ContentType: "image/jpeg", Size: 15 << 20},
	})
	if res.Accepted != 1 {
		t.Fatalf("accepted = %d, want 1", res.Accepted)
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("rejected = %+v", res.Rejected)
	}

	waitForCount(t, store, 1)
}

func TestSubmitAllRejectedCreatesNoBatch(t *testing.T) {
	store := memory.New()
	svc := NewUploadService(store, mockextract.New(1, fixedNow), nil, 0, 0)

	res := svc.Submit(context.Background(), []core.FileMeta{
		{Name: "bad.zip", ContentType: "application/zip", Size: 100},
	})
	if res.BatchID != "" || res.Accepted != 0 || len(res.Rejected) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Fatalf("store should stay empty, count=%d", n)
	}
}

func TestNilNotifierIsSkipped(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := memory.New()
	svc := NewUploadService(store, mockextract.New(1, fixedNow), nil, 0, 0)
	go func() { _ = svc.Run(ctx, 1) }()

	svc.Submit(ctx, []core.FileMeta{{Name: "a.jpg", ContentType: "image/jpeg", Size: 1}})
	waitForCount(t, store, 1)
}
