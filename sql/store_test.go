package sql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	qsql "github.com/queuectl/queuectl/sql"
)

func pendingJob(id string) *job.Job {
	return &job.Job{
		ID:         id,
		Command:    "echo hi",
		State:      job.StatePending,
		MaxRetries: 3,
		Timeout:    60,
	}
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	jb := pendingJob("j1")
	if err := store.Create(ctx, jb); err != nil {
		t.Fatal(err)
	}
	if jb.CreatedAt.IsZero() || jb.UpdatedAt.IsZero() {
		t.Fatal("timestamps not filled")
	}

	got, err := store.Get(ctx, "j1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("job not found")
	}
	if got.Command != "echo hi" || got.State != job.StatePending {
		t.Fatalf("unexpected job: %+v", got)
	}

	missing, err := store.Get(ctx, "nope")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing job")
	}
}

func TestCreateDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatal(err)
	}
	err := store.Create(ctx, pendingJob("j1"))
	if !errors.Is(err, queuectl.ErrJobExists) {
		t.Fatalf("expected ErrJobExists, got %v", err)
	}

	jobs, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
}

func TestListOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	scheduled := pendingJob("scheduled")
	runAt := queuectl.Now().Add(time.Hour)
	scheduled.RunAt = &runAt

	lo := pendingJob("lo")
	hi := pendingJob("hi")
	hi.Priority = 10

	for _, jb := range []*job.Job{scheduled, lo, hi} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != "hi" {
		t.Fatalf("expected hi first, got %s", jobs[0].ID)
	}
	// Same priority: scheduled jobs sort before unscheduled ones.
	if jobs[1].ID != "scheduled" || jobs[2].ID != "lo" {
		t.Fatalf("unexpected order: %s, %s", jobs[1].ID, jobs[2].ID)
	}
}

func TestListStateFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dead := pendingJob("dead")
	dead.State = job.StateDead
	for _, jb := range []*job.Job{pendingJob("p1"), dead} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	jobs, err := store.List(ctx, job.StateDead, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].ID != "dead" {
		t.Fatalf("unexpected filter result: %+v", jobs)
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	failed := pendingJob("f1")
	failed.State = job.StateFailed
	for _, jb := range []*job.Job{pendingJob("p1"), pendingJob("p2"), failed} {
		if err := store.Create(ctx, jb); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats[job.StatePending] != 2 || stats[job.StateFailed] != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "j1"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "j1"); !errors.Is(err, queuectl.ErrJobLost) {
		t.Fatalf("expected ErrJobLost, got %v", err)
	}
}

func TestInitIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	// Second init on an existing schema must be a no-op.
	if err := qsql.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
}
