package sql

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/job"
	"github.com/uptrace/bun"
)

// Store is the bun-backed SQLite implementation of the queuectl
// storage interfaces (Pusher, Puller, Observer, Journal, Cleaner).
//
// Every job mutation is a single short statement, so multi-field
// updates never partially commit; the leasing predicates pair a
// read-only select with one such conditional update. Correct
// behavior under concurrent worker processes rests on the conditional
// CAS updates in lease.go and transition.go.
type Store struct {
	db *bun.DB
}

// NewStore creates a new SQL-backed Store.
//
// The provided *bun.DB must be properly configured and connected.
// Schema initialization (InitDB) must be completed before use.
func NewStore(db *bun.DB) *Store {
	return &Store{
		db: db,
	}
}

// Create inserts a new job row, filling timestamps from the clock when
// unset.
//
// A primary-key collision yields queuectl.ErrJobExists; the existing
// row is never overwritten.
func (s *Store) Create(ctx context.Context, jb *job.Job) error {
	now := queuectl.Now()
	if jb.CreatedAt.IsZero() {
		jb.CreatedAt = now
	}
	if jb.UpdatedAt.IsZero() {
		jb.UpdatedAt = now
	}
	model := fromJob(jb)
	_, err := s.db.NewInsert().
		Model(model).
		Exec(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return queuectl.ErrJobExists
		}
		return err
	}
	return nil
}

// Get retrieves a job by its identifier.
//
// If no job with the given id exists, Get returns (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var ret jobModel
	err := s.db.NewSelect().
		Model(&ret).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ret.toJob(), nil
}

// List returns up to limit jobs filtered by state.
//
// An empty state applies no filter. A non-positive limit returns all
// matching rows. Ordering is the standard listing order:
// priority descending, then scheduled jobs by run_at with unscheduled
// ones last, then newest first.
func (s *Store) List(ctx context.Context, state job.State, limit int) ([]*job.Job, error) {
	var models []jobModel
	query := s.db.NewSelect().Model(&models).
		OrderExpr("priority DESC").
		OrderExpr("run_at IS NULL").
		OrderExpr("run_at ASC").
		OrderExpr("created_at DESC")
	if state != "" {
		query.Where("state = ?", state)
	}
	if limit > 0 {
		query.Limit(limit)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*job.Job, len(models))
	for i := range models {
		ret[i] = models[i].toJob()
	}
	return ret, nil
}

// Stats returns the count of jobs grouped by state.
func (s *Store) Stats(ctx context.Context) (map[job.State]int, error) {
	var rows []struct {
		State job.State `bun:"state"`
		Count int       `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		Column("state").
		ColumnExpr("count(*) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ret := make(map[job.State]int, len(rows))
	for _, row := range rows {
		ret[row.State] = row.Count
	}
	return ret, nil
}

// Delete removes the job with the given id.
//
// Returns queuectl.ErrJobLost if no such job exists.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().
		Model((*jobModel)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if !isAffected(res) {
		return queuectl.ErrJobLost
	}
	return nil
}
