package job

import "time"

// Job represents a unit of work managed by the queue storage.
//
// ID is a caller-supplied opaque string and is globally unique.
// Command is the shell command executed verbatim by a worker.
//
// CreatedAt records when the job was enqueued.
// UpdatedAt records the last state transition or modification and is
// strictly non-decreasing per job.
//
// Attempts counts completed execution attempts. MaxRetries bounds it:
// once a failed attempt brings Attempts up to MaxRetries, the job
// transitions to dead.
//
// Priority orders leasing; larger values run earlier. RunAt, when set,
// is the earliest instant the job may be leased. NextRetryAt is set
// while the job is failed and gates the retry lease.
//
// Timeout is the per-job execution limit in seconds.
//
// WorkerID identifies the current leaseholder while the job is
// processing and is empty in every other state.
//
// LastOutput and DurationMS carry telemetry from the most recent
// attempt.
//
// Job instances are snapshots of storage state. Mutating fields does
// not change the underlying queue; transitions go through the store.
type Job struct {
	ID      string `json:"id"`
	Command string `json:"command"`

	State      State `json:"state"`
	Attempts   int   `json:"attempts"`
	MaxRetries int   `json:"max_retries"`
	Priority   int   `json:"priority"`

	RunAt       *time.Time `json:"run_at,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	Timeout     int        `json:"timeout"`

	WorkerID string `json:"worker_id,omitempty"`

	LastOutput string `json:"last_output,omitempty"`
	DurationMS int64  `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Execution is one row of the append-only execution log, written on
// every completed, failed or dead transition.
//
// State records the state the job transitioned into. Attempts is the
// attempt count at the time of the transition. The log is
// observational only; queue correctness does not depend on it.
type Execution struct {
	ID         int64     `json:"-"`
	JobID      string    `json:"job_id"`
	State      State     `json:"state"`
	Success    bool      `json:"success"`
	Attempts   int       `json:"attempts"`
	DurationMS int64     `json:"duration_ms"`
	Output     string    `json:"output,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
