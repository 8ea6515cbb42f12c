package sql

import (
	"context"
	"time"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

// Complete transitions a processing job to completed.
//
// worker_id, next_retry_at and run_at are cleared; the consumed
// attempt count and telemetry are recorded; updated_at is refreshed.
//
// The update re-asserts the processing state; if it affects no rows,
// queuectl.ErrJobLost is returned and the caller's snapshot is left
// untouched.
func (s *Store) Complete(ctx context.Context, jb *job.Job, attempts int, output string, durationMS int64) error {
	now := queuectl.Now()
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.StateCompleted).
		Set("attempts = ?", attempts).
		Set("worker_id = NULL").
		Set("next_retry_at = NULL").
		Set("run_at = NULL").
		Set("last_output = ?", output).
		Set("duration_ms = ?", durationMS).
		Set("updated_at = ?", now).
		Where("id = ?", jb.ID).
		Where("state = ?", job.StateProcessing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	jb.State = job.StateCompleted
	jb.Attempts = attempts
	jb.WorkerID = ""
	jb.NextRetryAt = nil
	jb.RunAt = nil
	jb.LastOutput = output
	jb.DurationMS = durationMS
	jb.UpdatedAt = now
	return nil
}

// Fail transitions a processing job to failed, scheduling the next
// retry.
//
// worker_id is cleared, next_retry_at is set to nextRetryAt, the
// consumed attempt count and telemetry are recorded and updated_at is
// refreshed.
//
// If the update affects no rows, queuectl.ErrJobLost is returned.
func (s *Store) Fail(ctx context.Context, jb *job.Job, attempts int, nextRetryAt time.Time, output string, durationMS int64) error {
	now := queuectl.Now()
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.StateFailed).
		Set("attempts = ?", attempts).
		Set("next_retry_at = ?", nextRetryAt).
		Set("worker_id = NULL").
		Set("last_output = ?", output).
		Set("duration_ms = ?", durationMS).
		Set("updated_at = ?", now).
		Where("id = ?", jb.ID).
		Where("state = ?", job.StateProcessing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	jb.State = job.StateFailed
	jb.Attempts = attempts
	jb.NextRetryAt = &nextRetryAt
	jb.WorkerID = ""
	jb.LastOutput = output
	jb.DurationMS = durationMS
	jb.UpdatedAt = now
	return nil
}

// Kill transitions a processing job to dead after its retry budget is
// exhausted.
//
// worker_id, next_retry_at and run_at are cleared; the consumed
// attempt count and telemetry are recorded; updated_at is refreshed.
//
// If the update affects no rows, queuectl.ErrJobLost is returned.
func (s *Store) Kill(ctx context.Context, jb *job.Job, attempts int, output string, durationMS int64) error {
	now := queuectl.Now()
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.StateDead).
		Set("attempts = ?", attempts).
		Set("worker_id = NULL").
		Set("next_retry_at = NULL").
		Set("run_at = NULL").
		Set("last_output = ?", output).
		Set("duration_ms = ?", durationMS).
		Set("updated_at = ?", now).
		Where("id = ?", jb.ID).
		Where("state = ?", job.StateProcessing).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	jb.State = job.StateDead
	jb.Attempts = attempts
	jb.WorkerID = ""
	jb.NextRetryAt = nil
	jb.RunAt = nil
	jb.LastOutput = output
	jb.DurationMS = durationMS
	jb.UpdatedAt = now
	return nil
}

// Requeue moves a dead job back to pending with attempts reset to
// zero and next_retry_at, worker_id and run_at cleared.
//
// The update re-asserts the dead state, so requeuing a missing or
// non-dead job affects no rows and returns queuectl.ErrJobLost without
// mutating anything.
func (s *Store) Requeue(ctx context.Context, id string) error {
	now := queuectl.Now()
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", job.StatePending).
		Set("attempts = 0").
		Set("next_retry_at = NULL").
		Set("worker_id = NULL").
		Set("run_at = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("state = ?", job.StateDead).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	return nil
}
