package sql

import (
	"time"

	"github.com/queuectl/queuectl/job"
	"github.com/uptrace/bun"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	ID      string    `bun:"id,pk"`
	Command string    `bun:"command,notnull"`
	State   job.State `bun:"state,notnull"`

	Attempts   int `bun:"attempts,notnull,default:0"`
	MaxRetries int `bun:"max_retries,notnull,default:3"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	NextRetryAt *time.Time `bun:"next_retry_at,nullzero,default:null"`
	WorkerID    string     `bun:"worker_id,nullzero,default:null"`

	Priority   int        `bun:"priority,notnull,default:0"`
	RunAt      *time.Time `bun:"run_at,nullzero,default:null"`
	Timeout    int        `bun:"timeout,nullzero,default:null"`
	LastOutput string     `bun:"last_output,nullzero,default:null"`
	DurationMS int64      `bun:"duration_ms,nullzero,default:null"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		ID:          jm.ID,
		Command:     jm.Command,
		State:       jm.State,
		Attempts:    jm.Attempts,
		MaxRetries:  jm.MaxRetries,
		Priority:    jm.Priority,
		RunAt:       jm.RunAt,
		NextRetryAt: jm.NextRetryAt,
		Timeout:     jm.Timeout,
		WorkerID:    jm.WorkerID,
		LastOutput:  jm.LastOutput,
		DurationMS:  jm.DurationMS,
		CreatedAt:   jm.CreatedAt,
		UpdatedAt:   jm.UpdatedAt,
	}
}

func fromJob(jb *job.Job) *jobModel {
	return &jobModel{
		ID:          jb.ID,
		Command:     jb.Command,
		State:       jb.State,
		Attempts:    jb.Attempts,
		MaxRetries:  jb.MaxRetries,
		Priority:    jb.Priority,
		RunAt:       jb.RunAt,
		NextRetryAt: jb.NextRetryAt,
		Timeout:     jb.Timeout,
		WorkerID:    jb.WorkerID,
		LastOutput:  jb.LastOutput,
		DurationMS:  jb.DurationMS,
		CreatedAt:   jb.CreatedAt,
		UpdatedAt:   jb.UpdatedAt,
	}
}

type logModel struct {
	bun.BaseModel `bun:"table:job_logs"`

	ID         int64     `bun:"id,pk,autoincrement"`
	JobID      string    `bun:"job_id,notnull"`
	State      job.State `bun:"state,notnull"`
	Success    bool      `bun:"success,notnull"`
	Attempts   int       `bun:"attempts,notnull"`
	DurationMS int64     `bun:"duration_ms,nullzero,default:null"`
	Output     string    `bun:"output,nullzero,default:null"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

func (lm *logModel) toExecution() *job.Execution {
	return &job.Execution{
		ID:         lm.ID,
		JobID:      lm.JobID,
		State:      lm.State,
		Success:    lm.Success,
		Attempts:   lm.Attempts,
		DurationMS: lm.DurationMS,
		Output:     lm.Output,
		CreatedAt:  lm.CreatedAt,
	}
}
