// Package queuectl provides a persistent background job queue with
// at-least-once execution semantics, backed by a single embedded
// SQLite database file.
//
// # Overview
//
// queuectl durably records jobs submitted as opaque shell commands and
// drives them through an explicit state machine with bounded retry,
// exponential backoff and a terminal dead-letter sink. Several worker
// OS processes may consume the same database file concurrently; all
// mutual exclusion is expressed as database predicates, with no
// network broker or coordination service involved.
//
// # State Machine
//
// Jobs follow this lifecycle:
//
//	pending    -> processing   (lease)
//	processing -> completed
//	processing -> failed       (retries remain; next_retry_at set)
//	processing -> dead         (retries exhausted)
//	failed     -> processing   (retry lease, once next_retry_at is due)
//	dead       -> pending      (explicit requeue, attempts reset)
//
// completed is terminal. dead is terminal on the forward path.
//
// # Leasing
//
// A lease is the atomic transition pending|failed -> processing that
// grants one worker exclusive execution rights, identified by the
// worker id stamped on the row. Leases are acquired by a
// select-then-CAS: the highest-ranked eligible row is selected, then
// conditionally updated with the source state re-asserted in the WHERE
// clause. Two workers may select the same candidate; exactly one CAS
// affects a row and the loser moves on.
//
// Delivery is at-least-once: a worker killed mid-attempt leaves the
// row in processing until the lease reaper returns it to the queue,
// after which the command runs again. Commands should therefore be
// idempotent.
//
// # Retry Policy
//
// When an attempt fails, the consumed attempt count is compared
// against the job's retry bound. Below the bound, the job is
// rescheduled failed with next_retry_at = now + base^attempts seconds;
// at the bound it transitions to dead. Dead jobs are only revived by
// an explicit requeue, which resets attempts.
//
// # Components
//
//	Pusher   — record submissions
//	Puller   — leasing predicates and lifecycle transitions
//	Observer — inspect job state
//	Journal  — append-only execution log
//	Cleaner  — remove terminal jobs
//	Manager  — validation and transition rules over the store
//	Worker   — poll, execute, report, shut down gracefully
//	Reaper   — recover abandoned leases
//
// The interfaces allow storage implementations to be plugged in
// without coupling queue logic to a specific database; the sql
// subpackage provides the bun/SQLite implementation used by the CLI.
//
// # Concurrency Model
//
// Within a worker process the loop is single-threaded: execution
// blocks until the subprocess exits or times out. Across processes,
// coordination happens exclusively through short single-statement
// store transactions. No database lock is held across subprocess
// execution; a leased row is protected by its state, not by a lock.
//
// Shutdown is graceful: on SIGINT or SIGTERM the loop exits at the
// next suspension point, and an in-flight attempt is run to completion
// with its outcome posted before the process stops.
package queuectl
