package sql

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Open opens (creating if necessary) the SQLite database at path and
// returns it wrapped for bun.
//
// WAL mode and a busy timeout are enabled so that several worker
// processes can share the file, and the connection pool is capped at a
// single connection, which SQLite requires for correct write behavior
// under concurrency.
//
// The caller is responsible for running InitDB before use and for
// closing the returned DB.
func Open(path string) (*bun.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1) // important for sqlite
	return bun.NewDB(sqlDB, sqlitedialect.New()), nil
}
