package queuectl

import (
	"context"
	"log/slog"
	"time"

	"github.com/queuectl/queuectl/internal"
)

// ReaperConfig defines the scheduling parameters for a Reaper.
//
// Interval is how often abandoned leases are scanned for. Cutoff is
// the age threshold: processing rows whose UpdatedAt is older than
// now - Cutoff are considered abandoned. The cutoff should comfortably
// exceed the longest plausible execution, e.g. twice the default job
// timeout.
type ReaperConfig struct {
	Interval time.Duration
	Cutoff   time.Duration
}

// Reaper periodically returns abandoned leases to the queue.
//
// A lease is abandoned when its worker process was killed while
// holding it; the row then stays in processing forever, invisible to
// every leasing predicate. The Reaper moves such rows back to pending
// with the leaseholder cleared and attempts untouched, preserving
// at-least-once semantics.
//
// Reaper has the same strict lifecycle as Worker:
//   - Start may only be called once.
//   - Stop waits for the internal task to finish or until the timeout
//     expires.
type Reaper struct {
	lcBase
	puller   Puller
	task     internal.TimerTask
	log      *slog.Logger
	interval time.Duration
	cutoff   time.Duration
}

// NewReaper creates a new Reaper over the given Puller.
//
// The reaper is not started automatically. Call Start to begin
// periodic scanning.
func NewReaper(puller Puller, config *ReaperConfig, log *slog.Logger) *Reaper {
	return &Reaper{
		puller:   puller,
		log:      log,
		interval: config.Interval,
		cutoff:   config.Cutoff,
	}
}

func (r *Reaper) reap(ctx context.Context) {
	count, err := r.puller.Reap(ctx, r.cutoff)
	if err != nil {
		r.log.Error("error while reaping leases", "err", err)
		return
	}
	if count > 0 {
		r.log.Warn("requeued abandoned leases", "count", count)
	}
}

// Start begins periodic execution of the reaping task.
//
// Start returns ErrDoubleStarted if the reaper has already been
// started. The provided context controls cancellation of the
// background task.
func (r *Reaper) Start(ctx context.Context) error {
	if err := r.tryStart(); err != nil {
		return err
	}
	r.task.Start(ctx, r.reap, r.interval)
	return nil
}

// Stop terminates the background reaping task.
//
// Stop waits until the task finishes or the specified timeout expires.
// If shutdown does not complete within the timeout, ErrStopTimeout is
// returned.
//
// Stop returns ErrDoubleStopped if the reaper is not running.
func (r *Reaper) Stop(timeout time.Duration) error {
	return r.tryStop(timeout, r.task.Stop)
}
