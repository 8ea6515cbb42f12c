package queuectl

import (
	"context"
	"errors"

	"github.com/queuectl/queuectl/job"
)

// ErrJobExists indicates that a job with the same id is already
// recorded. Job ids are caller-supplied and globally unique; the store
// never overwrites an existing row.
var ErrJobExists = errors.New("job already exists")

// Pusher defines the write-side entry point of the queue.
type Pusher interface {

	// Create durably records a new job.
	//
	// Implementations are expected to:
	//
	//   - persist the job before returning nil
	//   - fill CreatedAt and UpdatedAt from the clock when unset
	//   - return ErrJobExists on an id collision, leaving the
	//     existing row untouched
	//
	// If Create returns a non-nil error, the job must not be
	// considered enqueued.
	Create(ctx context.Context, jb *job.Job) error
}
