package sql_test

import (
	"context"
	"testing"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

func TestLeasePending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatal(err)
	}

	jb, err := store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if jb == nil {
		t.Fatal("expected a lease")
	}
	if jb.State != job.StateProcessing {
		t.Fatalf("expected processing, got %v", jb.State)
	}
	if jb.WorkerID != "w1" {
		t.Fatalf("expected worker w1, got %q", jb.WorkerID)
	}

	// The row itself must reflect the transition.
	got, err := store.Get(ctx, "j1")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.StateProcessing || got.WorkerID != "w1" {
		t.Fatalf("lease not persisted: %+v", got)
	}
}

func TestLeasePendingEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	jb, err := store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("expected no lease on empty queue")
	}
}

func TestLeaseExclusive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatal(err)
	}

	first, err := store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if first == nil {
		t.Fatal("expected w1 to win the lease")
	}

	second, err := store.LeasePending(ctx, "w2")
	if err != nil {
		t.Fatal(err)
	}
	if second != nil {
		t.Fatal("expected w2 to observe no leasable job")
	}
}

func TestLeaseDeferredRunAt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	jb := pendingJob("future")
	runAt := queuectl.Now().Add(time.Hour)
	jb.RunAt = &runAt
	if err := store.Create(ctx, jb); err != nil {
		t.Fatal(err)
	}

	got, err := store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatal("deferred job must not be leasable before run_at")
	}

	due := pendingJob("due")
	past := queuectl.Now().Add(-time.Hour)
	due.RunAt = &past
	if err := store.Create(ctx, due); err != nil {
		t.Fatal(err)
	}

	got, err = store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != "due" {
		t.Fatalf("expected to lease due job, got %+v", got)
	}
}

func TestLeasePriorityOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	lo := pendingJob("lo")
	hi := pendingJob("hi")
	hi.Priority = 10
	for _, jb := range []*job.Job{lo, hi} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	first, err := store.LeasePending(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if first == nil || first.ID != "hi" {
		t.Fatalf("expected hi leased first, got %+v", first)
	}
}

func TestLeaseRetry(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	due := pendingJob("due")
	due.State = job.StateFailed
	dueAt := queuectl.Now().Add(-time.Second)
	due.NextRetryAt = &dueAt

	waiting := pendingJob("waiting")
	waiting.State = job.StateFailed
	waitingAt := queuectl.Now().Add(time.Hour)
	waiting.NextRetryAt = &waitingAt

	for _, jb := range []*job.Job{due, waiting} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	jb, err := store.LeaseRetry(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if jb == nil || jb.ID != "due" {
		t.Fatalf("expected due retry leased, got %+v", jb)
	}
	if jb.State != job.StateProcessing || jb.WorkerID != "w1" {
		t.Fatalf("retry lease not applied: %+v", jb)
	}

	jb, err = store.LeaseRetry(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("waiting retry must not be leasable before next_retry_at")
	}
}

func TestLeaseRetryIgnoresPending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatal(err)
	}

	jb, err := store.LeaseRetry(ctx, "w1")
	if err != nil {
		t.Fatal(err)
	}
	if jb != nil {
		t.Fatal("retry lease must not pick up pending jobs")
	}
}

func TestReap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	stale := pendingJob("stale")
	stale.State = job.StateProcessing
	stale.WorkerID = "w-dead"
	stale.Attempts = 1
	stale.UpdatedAt = queuectl.Now().Add(-2 * time.Hour)
	stale.CreatedAt = stale.UpdatedAt

	fresh := pendingJob("fresh")
	fresh.State = job.StateProcessing
	fresh.WorkerID = "w-live"

	for _, jb := range []*job.Job{stale, fresh} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	count, err := store.Reap(ctx, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reaped job, got %d", count)
	}

	got, err := store.Get(ctx, "stale")
	if err != nil {
		t.Fatal(err)
	}
	if got.State != job.StatePending || got.WorkerID != "" {
		t.Fatalf("stale lease not recovered: %+v", got)
	}
	if got.Attempts != 1 {
		t.Fatalf("attempts must be untouched, got %d", got.Attempts)
	}

	live, err := store.Get(ctx, "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if live.State != job.StateProcessing || live.WorkerID != "w-live" {
		t.Fatalf("fresh lease must not be reaped: %+v", live)
	}
}
