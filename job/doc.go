// Package job defines the persistent representation of a queued shell
// command and its lifecycle state.
//
// A Job carries the caller-supplied identity and command together with
// delivery metadata: state, attempt count, retry bound, scheduling
// timestamps and the telemetry of the most recent execution.
//
// Job values are snapshots returned by the storage layer. Their fields
// reflect the authoritative state stored in the database; transitions
// are performed through the store, never by mutating a Job directly.
//
// Execution models one row of the append-only execution log.
package job
