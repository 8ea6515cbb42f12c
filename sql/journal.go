package sql

import (
	"context"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
)

// Append records one execution outcome in the job_logs table.
//
// CreatedAt is filled from the clock when unset. The log is strictly
// append-only; rows are never updated.
func (s *Store) Append(ctx context.Context, entry *job.Execution) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = queuectl.Now()
	}
	model := &logModel{
		JobID:      entry.JobID,
		State:      entry.State,
		Success:    entry.Success,
		Attempts:   entry.Attempts,
		DurationMS: entry.DurationMS,
		Output:     entry.Output,
		CreatedAt:  entry.CreatedAt,
	}
	_, err := s.db.NewInsert().
		Model(model).
		Exec(ctx)
	if err != nil {
		return err
	}
	entry.ID = model.ID
	return nil
}

// Recent returns up to limit execution log rows, newest first.
//
// The row id breaks created_at ties so the order stays stable for
// entries written within the same timestamp granularity.
func (s *Store) Recent(ctx context.Context, limit int) ([]*job.Execution, error) {
	var models []logModel
	query := s.db.NewSelect().
		Model(&models).
		OrderExpr("created_at DESC").
		OrderExpr("id DESC")
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*job.Execution, len(models))
	for i := range models {
		ret[i] = models[i].toExecution()
	}
	return ret, nil
}
