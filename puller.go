package queuectl

import (
	"context"
	"errors"
	"time"

	"github.com/queuectl/queuectl/job"
)

// ErrJobLost indicates that a conditional transition affected zero
// rows: the referenced job no longer exists or is not in the state the
// caller observed.
//
// This happens when another actor concurrently transitioned or removed
// the job. Callers treat it as "lost the race, move on".
var ErrJobLost = errors.New("job lost")

// Puller defines the contract for leasing jobs and driving their
// lifecycle transitions.
//
// Leasing is the only operation with real concurrency content: several
// worker processes race the same database file, and exactly one of
// them may own a job at any instant. Implementations express the lease
// as a select-then-CAS: pick the highest-ranked eligible row, then
// conditionally update it re-asserting the source state in the WHERE
// clause. A concurrent winner produces a zero-row update; the loser
// retries the select-CAS once and then gives up until the next poll.
//
// Transitions out of processing (Complete, Fail, Kill) also re-assert
// the processing state so a lost lease surfaces as ErrJobLost instead
// of silently clobbering another worker's row.
type Puller interface {

	// LeasePending atomically moves the single highest-ranked
	// leasable pending job to processing, stamping workerID and
	// UpdatedAt and clearing NextRetryAt.
	//
	// A pending job is leasable when RunAt is unset or due and
	// NextRetryAt is unset or due. Ranking is
	// (priority DESC, run_at NULLS LAST ASC, created_at ASC).
	//
	// Returns the fully-populated leased row, or (nil, nil) when no
	// job is leasable or every candidate was lost to a concurrent
	// worker.
	LeasePending(ctx context.Context, workerID string) (*job.Job, error)

	// LeaseRetry is LeasePending for failed jobs whose NextRetryAt
	// is due, ranked by (priority DESC, next_retry_at ASC).
	LeaseRetry(ctx context.Context, workerID string) (*job.Job, error)

	// Complete transitions a processing job to completed.
	//
	// WorkerID, NextRetryAt and RunAt are cleared; attempts and the
	// attempt telemetry are recorded. Returns ErrJobLost if the job
	// is no longer processing.
	Complete(ctx context.Context, jb *job.Job, attempts int, output string, durationMS int64) error

	// Fail transitions a processing job to failed, scheduling a
	// retry at nextRetryAt.
	//
	// WorkerID is cleared; attempts and telemetry are recorded.
	// Returns ErrJobLost if the job is no longer processing.
	Fail(ctx context.Context, jb *job.Job, attempts int, nextRetryAt time.Time, output string, durationMS int64) error

	// Kill transitions a processing job to dead after its retry
	// budget is exhausted.
	//
	// WorkerID, NextRetryAt and RunAt are cleared; attempts and
	// telemetry are recorded. Returns ErrJobLost if the job is no
	// longer processing.
	Kill(ctx context.Context, jb *job.Job, attempts int, output string, durationMS int64) error

	// Requeue moves a dead job back to pending with attempts reset
	// to zero and NextRetryAt, WorkerID and RunAt cleared.
	//
	// Returns ErrJobLost if the job does not exist or is not dead.
	Requeue(ctx context.Context, id string) error

	// Reap returns abandoned leases to the queue: processing rows
	// whose UpdatedAt is older than olderThan are moved back to
	// pending with WorkerID cleared and attempts untouched.
	//
	// A lease is abandoned when its worker process died without
	// posting an outcome. Reap preserves at-least-once semantics;
	// the reclaimed job will simply run again.
	//
	// Reap reports the number of requeued jobs.
	Reap(ctx context.Context, olderThan time.Duration) (int64, error)
}
