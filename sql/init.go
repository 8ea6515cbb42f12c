package sql

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

func createJobsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*jobModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func createLogsTable(ctx context.Context, db bun.IDB) error {
	_, err := db.NewCreateTable().
		Model((*logModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// jobColumns lists columns added after the first schema version, in
// the order they appeared. Older databases are upgraded additively;
// nothing is dropped or rewritten.
var jobColumns = []struct {
	name string
	ddl  string
}{
	{"priority", "INTEGER NOT NULL DEFAULT 0"},
	{"run_at", "TIMESTAMP"},
	{"timeout", "INTEGER"},
	{"last_output", "TEXT"},
	{"duration_ms", "INTEGER"},
}

func addMissingColumns(ctx context.Context, db bun.IDB) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info(jobs)")
	if err != nil {
		return err
	}
	existing := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dfltValue, &pk); err != nil {
			_ = rows.Close()
			return err
		}
		existing[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}
	for _, column := range jobColumns {
		if existing[column.name] {
			continue
		}
		ddl := fmt.Sprintf("ALTER TABLE jobs ADD COLUMN %s %s", column.name, column.ddl)
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}

type indexSpec struct {
	model   any
	name    string
	columns []string
}

var indexes = []indexSpec{
	{(*jobModel)(nil), "idx_jobs_state", []string{"state"}},
	{(*jobModel)(nil), "idx_jobs_next_retry", []string{"next_retry_at"}},
	{(*jobModel)(nil), "idx_jobs_priority", []string{"priority"}},
	{(*jobModel)(nil), "idx_jobs_run_at", []string{"run_at"}},
	{(*logModel)(nil), "idx_job_logs_job_id", []string{"job_id"}},
	{(*logModel)(nil), "idx_job_logs_created_at", []string{"created_at"}},
}

func createIndexes(ctx context.Context, db bun.IDB) error {
	for _, spec := range indexes {
		_, err := db.NewCreateIndex().
			Model(spec.model).
			Index(spec.name).
			Column(spec.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func initDB(ctx context.Context, db *bun.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := createJobsTable(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createLogsTable(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := addMissingColumns(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := createIndexes(ctx, tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

// InitDB initializes the database schema required by the SQL backend.
//
// It creates the jobs and job_logs tables, upgrades older schemas by
// adding missing columns, and creates the required indexes, all inside
// a single transaction. If any step fails, the transaction is rolled
// back.
//
// InitDB is idempotent and may be safely called multiple times. It
// never drops or modifies existing objects beyond creating missing
// ones.
func InitDB(ctx context.Context, db *bun.DB) error {
	return initDB(ctx, db)
}

// MustInitDB behaves like InitDB but panics if initialization fails.
//
// This helper is intended for application bootstrap code where failure
// to initialize schema is considered unrecoverable.
func MustInitDB(ctx context.Context, db *bun.DB) {
	if err := initDB(ctx, db); err != nil {
		panic(err)
	}
}
