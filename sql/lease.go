package sql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/uptrace/bun"
)

// leaseAttempts bounds the select-CAS loop: one initial try plus one
// retry after losing the race to a concurrent worker.
const leaseAttempts = 2

// lease implements the select-then-CAS acquisition shared by both
// predicates.
//
// The candidate query selects the single highest-ranked eligible row.
// The subsequent conditional update re-asserts the source state in its
// WHERE clause, so a concurrent winner produces a zero-row update; the
// loser re-selects once and then gives up until the next poll.
func (s *Store) lease(ctx context.Context, workerID string, from job.State, candidate func(*bun.SelectQuery) *bun.SelectQuery) (*job.Job, error) {
	now := queuectl.Now()
	for i := 0; i < leaseAttempts; i++ {
		var m jobModel
		err := candidate(s.db.NewSelect().Model(&m)).
			Limit(1).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		res, err := s.db.NewUpdate().
			Model((*jobModel)(nil)).
			Set("state = ?", job.StateProcessing).
			Set("worker_id = ?", workerID).
			Set("next_retry_at = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", m.ID).
			Where("state = ?", from).
			Exec(ctx)
		if err != nil {
			return nil, err
		}
		if !isAffected(res) {
			continue // lost the race, re-select
		}
		m.State = job.StateProcessing
		m.WorkerID = workerID
		m.NextRetryAt = nil
		m.UpdatedAt = now
		return m.toJob(), nil
	}
	return nil, nil
}

// LeasePending atomically claims the highest-ranked runnable pending
// job for workerID.
//
// A pending job is eligible when:
//
//   - run_at is NULL or due
//   - next_retry_at is NULL or due
//
// Ranking is priority DESC, then run_at ascending with NULLs last,
// then created_at ascending. The tie-breaks are deterministic so that
// racing workers all try the same top row first.
//
// Returns (nil, nil) when nothing is leasable or every candidate was
// claimed by a concurrent worker.
func (s *Store) LeasePending(ctx context.Context, workerID string) (*job.Job, error) {
	now := queuectl.Now()
	return s.lease(ctx, workerID, job.StatePending, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("state = ?", job.StatePending).
			Where("(run_at IS NULL OR run_at <= ?)", now).
			Where("(next_retry_at IS NULL OR next_retry_at <= ?)", now).
			OrderExpr("priority DESC").
			OrderExpr("run_at IS NULL").
			OrderExpr("run_at ASC").
			OrderExpr("created_at ASC")
	})
}

// LeaseRetry atomically claims the highest-ranked failed job whose
// retry delay has elapsed.
//
// Ranking is priority DESC, then next_retry_at ascending.
//
// Returns (nil, nil) when no retry is due or every candidate was
// claimed by a concurrent worker.
func (s *Store) LeaseRetry(ctx context.Context, workerID string) (*job.Job, error) {
	now := queuectl.Now()
	return s.lease(ctx, workerID, job.StateFailed, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Where("state = ?", job.StateFailed).
			Where("next_retry_at IS NOT NULL").
			Where("next_retry_at <= ?", now).
			OrderExpr("priority DESC").
			OrderExpr("next_retry_at ASC")
	})
}

// Reap returns abandoned leases to the queue.
//
// Processing rows whose updated_at is older than now - olderThan are
// moved back to pending with the leaseholder cleared; attempts are
// left untouched, preserving at-least-once semantics.
//
// Reap reports the number of requeued jobs.
func (s *Store) Reap(ctx context.Context, olderThan time.Duration) (int64, error) {
	now := queuectl.Now()
	cutoff := now.Add(-olderThan)
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.StatePending).
		Set("worker_id = NULL").
		Set("updated_at = ?", now).
		Where("state = ?", job.StateProcessing).
		Where("updated_at <= ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
