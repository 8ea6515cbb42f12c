package queuectl

import (
	"context"

	"github.com/queuectl/queuectl/job"
)

// Observer provides read-only access to jobs stored in the queue.
//
// Observer does not modify job state and does not participate in
// leasing or lifecycle transitions. It is intended for diagnostic,
// monitoring and administrative use.
//
// Methods return authoritative snapshots of storage state at the time
// of the call. Returned values must be treated as immutable views.
type Observer interface {

	// Get returns the job identified by id.
	//
	// If no job with the given id exists, Get returns (nil, nil).
	Get(ctx context.Context, id string) (*job.Job, error)

	// List returns up to limit jobs, optionally filtered by state.
	//
	// An empty state means "no filter". A non-positive limit returns
	// all matching jobs. Results are ordered by
	// (priority DESC, run_at NULLS LAST ASC, created_at DESC).
	List(ctx context.Context, state job.State, limit int) ([]*job.Job, error)

	// Stats returns the count of jobs grouped by state. States with
	// no jobs are absent from the map.
	Stats(ctx context.Context) (map[job.State]int, error)
}

// Journal provides access to the append-only execution log.
//
// One row is appended for every completed, failed or dead transition.
// The log is observational; queue correctness never depends on reading
// it back.
type Journal interface {

	// Append records one execution outcome. CreatedAt is filled from
	// the clock when unset.
	Append(ctx context.Context, entry *job.Execution) error

	// Recent returns up to limit log rows, newest first.
	Recent(ctx context.Context, limit int) ([]*job.Execution, error)
}
