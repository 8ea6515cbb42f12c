package job

import "fmt"

// State represents the current lifecycle state of a Job.
//
// The state machine is:
//
//	pending    -> processing   (lease)
//	processing -> completed
//	processing -> failed       (attempt failed, retries remain)
//	processing -> dead         (attempt failed, retries exhausted)
//	failed     -> processing   (retry lease)
//	dead       -> pending      (explicit requeue)
//
// completed is terminal. dead is terminal on the forward path and may
// only be left through the explicit dead-to-pending requeue.
type State string

const (
	// StatePending indicates that the job is waiting for a worker.
	// A pending job may carry a future RunAt, delaying execution.
	StatePending State = "pending"

	// StateProcessing indicates that the job is leased by a worker.
	// While in this state, WorkerID identifies the leaseholder.
	StateProcessing State = "processing"

	// StateCompleted indicates successful execution. The job will not
	// run again.
	StateCompleted State = "completed"

	// StateFailed indicates a failed attempt with retries remaining.
	// NextRetryAt defines when the job becomes leasable again.
	StateFailed State = "failed"

	// StateDead indicates that the job exhausted its retry budget.
	// It will not run again unless explicitly requeued.
	StateDead State = "dead"
)

// States lists all valid job states in lifecycle order.
var States = []State{StatePending, StateProcessing, StateCompleted, StateFailed, StateDead}

// ParseState converts a string into a State value.
//
// Recognized values are:
//
//	"pending"
//	"processing"
//	"completed"
//	"failed"
//	"dead"
//
// An error is returned for unrecognized strings.
func ParseState(s string) (State, error) {
	switch State(s) {
	case StatePending, StateProcessing, StateCompleted, StateFailed, StateDead:
		return State(s), nil
	default:
		return "", fmt.Errorf("unknown state: %s", s)
	}
}

// Terminal reports whether the state ends the forward lifecycle path.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateDead
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// The textual form must match one of the canonical state names.
func (s *State) UnmarshalText(text []byte) error {
	state, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = state
	return nil
}

// String returns the canonical string representation of the state.
func (s State) String() string {
	return string(s)
}
