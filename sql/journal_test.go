package sql_test

import (
	"context"
	"testing"

	"github.com/queuectl/queuectl/job"
)

func TestJournalAppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entries := []*job.Execution{
		{JobID: "j1", State: job.StateFailed, Attempts: 1, DurationMS: 5, Output: "boom"},
		{JobID: "j1", State: job.StateFailed, Attempts: 2, DurationMS: 5, Output: "boom"},
		{JobID: "j1", State: job.StateDead, Attempts: 3, DurationMS: 5, Output: "boom"},
	}
	for _, entry := range entries {
		if err := store.Append(ctx, entry); err != nil {
			t.Fatal(err)
		}
		if entry.CreatedAt.IsZero() {
			t.Fatal("created_at not filled")
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recent))
	}
	if recent[0].State != job.StateDead || recent[0].Attempts != 3 {
		t.Fatalf("expected newest row first, got %+v", recent[0])
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
}
