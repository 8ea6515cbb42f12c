package queuectl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/queuectl/queuectl/job"
)

// Submission is the client-facing payload of an enqueue request.
//
// ID and Command are required. The remaining fields are optional and
// fall back to configured defaults. RunAt is an ISO-8601 timestamp.
//
// Submissions are decoded strictly: unknown fields are rejected.
type Submission struct {
	ID         string `json:"id"`
	Command    string `json:"command"`
	MaxRetries *int   `json:"max_retries"`
	Priority   *int   `json:"priority"`
	RunAt      string `json:"run_at"`
	Timeout    *int   `json:"timeout"`
}

// ParseSubmission decodes a JSON enqueue payload.
//
// Non-numeric values for numeric fields and unknown fields are
// rejected.
func ParseSubmission(data []byte) (*Submission, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var sub Submission
	if err := dec.Decode(&sub); err != nil {
		return nil, fmt.Errorf("invalid job JSON: %w", err)
	}
	return &sub, nil
}

// ManagerConfig carries the policy defaults applied at enqueue time
// and the retry policy applied after failed attempts.
//
// DefaultTimeout is the per-job execution timeout in seconds used when
// a submission does not specify one.
type ManagerConfig struct {
	Backoff        BackoffConfig
	DefaultTimeout int
}

// Manager validates submissions and applies the state-transition rules
// layered over the store.
//
// Manager is the sole writer of job state outside the two leasing
// predicates. Every terminal or retry-scheduled outcome it applies
// also appends one row to the execution log.
type Manager struct {
	pusher  Pusher
	puller  Puller
	journal Journal
	backoff BackoffConfig
	timeout int
}

// NewManager creates a new Manager over the given store facets.
func NewManager(pusher Pusher, puller Puller, journal Journal, config *ManagerConfig) *Manager {
	return &Manager{
		pusher:  pusher,
		puller:  puller,
		journal: journal,
		backoff: config.Backoff,
		timeout: config.DefaultTimeout,
	}
}

// Enqueue validates a submission, fills defaults and records the job
// in pending state.
//
// Returns ErrJobExists (wrapped) on an id collision. Validation
// failures never mutate state.
func (m *Manager) Enqueue(ctx context.Context, sub *Submission) (*job.Job, error) {
	if sub.ID == "" {
		return nil, fmt.Errorf("job must have an %q field", "id")
	}
	if sub.Command == "" {
		return nil, fmt.Errorf("job must have a %q field", "command")
	}
	now := Now()
	jb := &job.Job{
		ID:         sub.ID,
		Command:    sub.Command,
		State:      job.StatePending,
		MaxRetries: m.backoff.MaxRetries,
		Timeout:    m.timeout,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if sub.MaxRetries != nil {
		jb.MaxRetries = *sub.MaxRetries
	}
	if sub.Priority != nil {
		jb.Priority = *sub.Priority
	}
	if sub.Timeout != nil {
		jb.Timeout = *sub.Timeout
	}
	if jb.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be greater than zero")
	}
	if sub.RunAt != "" {
		runAt, err := ParseTimestamp(sub.RunAt)
		if err != nil {
			return nil, err
		}
		jb.RunAt = &runAt
	}
	if err := m.pusher.Create(ctx, jb); err != nil {
		if errors.Is(err, ErrJobExists) {
			return nil, fmt.Errorf("job with id %q: %w", jb.ID, ErrJobExists)
		}
		return nil, err
	}
	return jb, nil
}

// MarkCompleted transitions a leased job to completed, recording the
// consumed attempt and its telemetry, and appends a success log row.
func (m *Manager) MarkCompleted(ctx context.Context, jb *job.Job, output string, durationMS int64) error {
	attempts := jb.Attempts + 1
	if err := m.puller.Complete(ctx, jb, attempts, output, durationMS); err != nil {
		return err
	}
	return m.journal.Append(ctx, &job.Execution{
		JobID:      jb.ID,
		State:      job.StateCompleted,
		Success:    true,
		Attempts:   attempts,
		DurationMS: durationMS,
		Output:     output,
	})
}

// MarkFailed records a failed attempt and drives the retry/dead
// decision.
//
// The consumed attempt count is jb.Attempts + 1. If it reaches the
// job's retry bound the job transitions to dead and MarkFailed reports
// false ("do not retry"); otherwise the job transitions to failed with
// NextRetryAt set by the backoff schedule and MarkFailed reports true.
//
// The persisted output is the combined subprocess output concatenated
// with execErr's message, stripped of surrounding whitespace.
func (m *Manager) MarkFailed(ctx context.Context, jb *job.Job, output string, durationMS int64, execErr error) (bool, error) {
	combined := output
	if execErr != nil {
		combined = strings.TrimSpace(combined + "\n" + execErr.Error())
	}
	attempts := jb.Attempts + 1
	policy := BackoffConfig{MaxRetries: jb.MaxRetries, Base: m.backoff.Base}
	if policy.Exhausted(attempts) {
		if err := m.puller.Kill(ctx, jb, attempts, combined, durationMS); err != nil {
			return false, err
		}
		return false, m.journal.Append(ctx, &job.Execution{
			JobID:      jb.ID,
			State:      job.StateDead,
			Attempts:   attempts,
			DurationMS: durationMS,
			Output:     combined,
		})
	}
	nextRetryAt := policy.NextRetryAt(Now(), attempts)
	if err := m.puller.Fail(ctx, jb, attempts, nextRetryAt, combined, durationMS); err != nil {
		return false, err
	}
	return true, m.journal.Append(ctx, &job.Execution{
		JobID:      jb.ID,
		State:      job.StateFailed,
		Attempts:   attempts,
		DurationMS: durationMS,
		Output:     combined,
	})
}

// RetryDead requeues a dead job to pending with attempts reset.
//
// Returns true iff the job existed and was dead. A non-dead job is
// left untouched and reported as false.
func (m *Manager) RetryDead(ctx context.Context, id string) (bool, error) {
	err := m.puller.Requeue(ctx, id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrJobLost) {
		return false, nil
	}
	return false, err
}
