package queuectl_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/queuectl/queuectl"
	qsql "github.com/queuectl/queuectl/sql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", "file::memory:?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1) // important for sqlite
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	ctx := context.Background()
	if err := qsql.InitDB(ctx, db); err != nil {
		t.Fatal(err)
	}
	return db
}

func newTestStore(t *testing.T) *qsql.Store {
	t.Helper()
	return qsql.NewStore(newTestDB(t))
}

func newTestManager(t *testing.T, store *qsql.Store, backoff queuectl.BackoffConfig) *queuectl.Manager {
	t.Helper()
	return queuectl.NewManager(store, store, store, &queuectl.ManagerConfig{
		Backoff:        backoff,
		DefaultTimeout: 3600,
	})
}
