// Package sql provides the bun-based SQLite storage backend for
// queuectl.
//
// This package implements the queuectl interfaces (Pusher, Puller,
// Observer, Journal, Cleaner) on a single Store over a relational
// database via github.com/uptrace/bun and modernc.org/sqlite.
//
// # Overview
//
// The SQL backend provides:
//
//   - durable persistence of jobs and execution logs
//   - atomic select-then-CAS leasing across worker processes
//   - conditional lifecycle transitions that re-assert source state
//   - additive schema upgrades for older database files
//
// # Concurrency Model
//
// Leases are acquired by selecting the single highest-ranked eligible
// row and then issuing a conditional UPDATE whose WHERE clause
// re-asserts the source state. Two workers may select the same
// candidate, but exactly one update affects a row; the loser observes
// zero affected rows, re-selects once, and then gives up until its
// next poll. Transitions out of processing follow the same pattern, so
// a lost lease surfaces as queuectl.ErrJobLost instead of silently
// overwriting another worker's row.
//
// Every job mutation is one short single-statement transaction; a
// lease's select and its conditional update run as separate
// statements. No lock is held across subprocess execution; a leased
// row is protected by its state.
//
// # Schema
//
// InitDB (or MustInitDB) creates:
//
//   - the jobs table (if not exists)
//   - the job_logs table (if not exists)
//   - indexes on state, next_retry_at, priority and run_at, and on
//     the log's job_id and created_at
//
// Databases created by older schema versions are upgraded in place by
// adding the missing columns (priority, run_at, timeout, last_output,
// duration_ms); nothing is dropped.
//
// # Database Lifecycle
//
// Open configures SQLite the way multi-process access requires: WAL
// journal mode, a busy timeout, and a pool capped at one connection.
// The caller runs InitDB once before use and closes the DB on exit.
package sql
