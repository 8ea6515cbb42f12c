package queuectl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/queuectl/queuectl/internal"
	"github.com/queuectl/queuectl/job"
)

// WorkerConfig defines runtime behavior of a Worker.
//
// PollInterval is the idle sleep between lease attempts.
// DefaultTimeout is the execution timeout applied when a leased job
// carries none of its own.
type WorkerConfig struct {
	PollInterval   time.Duration
	DefaultTimeout time.Duration
}

// Worker is the long-running consumption loop of one worker process.
//
// The loop is single-threaded: on each tick it asks the store for a
// pending lease, then for a failed-retry lease (pending is always
// preferred), executes the leased command through the system shell
// with the job's timeout, and posts the outcome to the Manager. When
// no job is leasable it sleeps for the poll interval.
//
// All coordination with other worker processes happens through the
// store's leasing predicates; the Worker holds no cross-process state.
//
// Shutdown is graceful: cancelling the Start context stops the loop at
// the next suspension point. An in-flight attempt is run to completion
// (or timeout) and its outcome is posted before the loop exits, so a
// store write for a finished attempt is never abandoned.
//
// Worker has a strict lifecycle:
//   - Start may only be called once.
//   - Stop waits until the loop has fully terminated or the timeout
//     expires.
type Worker struct {
	lcBase
	id       string
	puller   Puller
	manager  *Manager
	log      *slog.Logger
	interval time.Duration
	timeout  time.Duration
	cancel   context.CancelFunc
	done     internal.DoneChan
}

// NewWorker creates a new Worker identified by id.
//
// The worker is not started automatically. Call Start to begin
// processing.
func NewWorker(id string, puller Puller, manager *Manager, config *WorkerConfig, log *slog.Logger) *Worker {
	return &Worker{
		id:       id,
		puller:   puller,
		manager:  manager,
		log:      log,
		interval: config.PollInterval,
		timeout:  config.DefaultTimeout,
	}
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() string {
	return w.id
}

func (w *Worker) lease(ctx context.Context) *job.Job {
	jb, err := w.puller.LeasePending(ctx, w.id)
	if err != nil {
		w.log.Error("pending lease failed", "worker", w.id, "err", err)
		return nil
	}
	if jb != nil {
		return jb
	}
	jb, err = w.puller.LeaseRetry(ctx, w.id)
	if err != nil {
		w.log.Error("retry lease failed", "worker", w.id, "err", err)
		return nil
	}
	return jb
}

func (w *Worker) execute(jb *job.Job) {
	timeout := w.timeout
	if jb.Timeout > 0 {
		timeout = time.Duration(jb.Timeout) * time.Second
	}
	w.log.Info("processing job", "worker", w.id, "id", jb.ID, "priority", jb.Priority, "timeout", timeout)
	res := Execute(jb.Command, timeout)
	// Outcomes are posted on a fresh context: the attempt already ran,
	// and a canceled Start context must not abandon its result.
	if res.Success {
		if err := w.manager.MarkCompleted(context.Background(), jb, res.Output, res.DurationMS); err != nil {
			w.log.Error("cannot complete job", "worker", w.id, "id", jb.ID, "err", err)
			return
		}
		w.log.Info("job completed", "worker", w.id, "id", jb.ID, "duration_ms", res.DurationMS)
		return
	}
	retry, err := w.manager.MarkFailed(context.Background(), jb, res.Output, res.DurationMS, nil)
	if err != nil {
		w.log.Error("cannot fail job", "worker", w.id, "id", jb.ID, "err", err)
		return
	}
	if retry {
		w.log.Warn("job failed, will retry", "worker", w.id, "id", jb.ID, "attempt", jb.Attempts+1)
	} else {
		w.log.Warn("job failed permanently, moved to DLQ", "worker", w.id, "id", jb.ID)
	}
}

// tick performs one poll-lease-execute round. It reports whether a job
// was handled. A panic anywhere in the round marks the leased job as
// failed on a best-effort basis so a poisoned command cannot wedge its
// lease.
func (w *Worker) tick(ctx context.Context) (handled bool) {
	var current *job.Job
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("worker panic recovered", "worker", w.id, "err", r)
			if current != nil {
				_, err := w.manager.MarkFailed(context.Background(), current, "", 0, fmt.Errorf("worker panic: %v", r))
				if err != nil {
					w.log.Error("cannot fail job after panic", "worker", w.id, "id", current.ID, "err", err)
				}
			}
		}
	}()
	current = w.lease(ctx)
	if current == nil {
		return false
	}
	w.execute(current)
	current = nil
	return true
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)
	w.log.Info("worker started", "worker", w.id)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped", "worker", w.id)
			return
		default:
		}
		if w.tick(ctx) {
			continue
		}
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped", "worker", w.id)
			return
		case <-time.After(w.interval):
		}
	}
}

// Start begins background polling and processing of jobs.
//
// Start returns ErrDoubleStarted if the worker has already been
// started. The provided context controls shutdown: when it is
// canceled, the loop exits at the next suspension point after posting
// the outcome of any in-flight attempt.
func (w *Worker) Start(ctx context.Context) error {
	if err := w.tryStart(); err != nil {
		return err
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(internal.DoneChan)
	go w.run(ctx)
	return nil
}

func (w *Worker) doStop() internal.DoneChan {
	w.cancel()
	return w.done
}

// Stop initiates graceful shutdown and waits for the loop to finish.
//
// The timeout should be generous enough to cover a full job timeout,
// since an in-flight attempt is run to completion. If shutdown does
// not complete in time, ErrStopTimeout is returned and the loop may
// still be terminating in the background.
//
// Stop returns ErrDoubleStopped if the worker is not running.
func (w *Worker) Stop(timeout time.Duration) error {
	return w.tryStop(timeout, w.doStop)
}
