package queuectl

import (
	"context"
	"errors"
	"time"

	"github.com/queuectl/queuectl/job"
)

// ErrBadState indicates that an invalid job state was supplied to
// Cleaner.
//
// Cleaner implementations restrict deletion to terminal states
// (completed or dead). Supplying a non-terminal state such as pending
// or processing results in ErrBadState.
var ErrBadState = errors.New("bad job state")

// Cleaner provides a mechanism for permanently removing jobs from
// storage.
//
// Cleaner is intended for administrative and retention-management use.
// It does not participate in normal job processing and must not touch
// non-terminal jobs except through Delete, which removes a single row
// by id regardless of state.
type Cleaner interface {

	// Delete removes the job with the given id. Returns ErrJobLost
	// if no such job exists.
	Delete(ctx context.Context, id string) error

	// Prune deletes terminal jobs matching the given state and time
	// condition.
	//
	// An empty state targets both completed and dead jobs. A
	// non-terminal state yields ErrBadState. If before is non-nil,
	// only jobs with UpdatedAt <= *before are deleted.
	//
	// Prune returns the number of deleted jobs.
	Prune(ctx context.Context, state job.State, before *time.Time) (int64, error)
}
