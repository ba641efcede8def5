package constants

// ExecutionState represents the state of a behavior instance in the
// supervisor's state machine. Values use snake_case for JSON
// serialization compatibility.
type ExecutionState string

// Execution state constants define the valid states a behavior instance
// can be in. These follow the state machine enforced by the supervisor:
//
//	Idle → Initializing
//	Initializing → Running, Succeeded, Failed
//	Running → Canceling, Succeeded, Failed
//	Canceling → Succeeded, Failed
const (
	// StateIdle indicates the supervisor has no active goal.
	StateIdle ExecutionState = "idle"

	// StateInitializing indicates the behavior's one-shot setup is in
	// progress. Initialize is treated as atomic: a cancellation requested
	// during this state is honored at the next scheduler tick.
	StateInitializing ExecutionState = "initializing"

	// StateRunning indicates the behavior is being driven by the cyclic
	// scheduler, one Step call per tick.
	StateRunning ExecutionState = "running"

	// StateCanceling indicates a cancellation was requested and the
	// behavior is winding down within its grace period.
	StateCanceling ExecutionState = "canceling"

	// StateSucceeded is the terminal state for a behavior that completed.
	StateSucceeded ExecutionState = "succeeded"

	// StateFailed is the terminal state for a behavior whose setup or
	// cyclic execution failed, or whose cancellation was honored.
	StateFailed ExecutionState = "failed"
)

// String returns the string representation of the ExecutionState.
// This implements fmt.Stringer for convenient logging and debugging.
func (s ExecutionState) String() string {
	return string(s)
}

// ResultStatus classifies the terminal outcome delivered to the client
// that owns the goal handle. Values use snake_case for JSON
// serialization compatibility.
type ResultStatus string

// Result status constants. Exactly one result is produced per accepted
// goal, carrying one of these statuses.
const (
	// ResultSucceeded indicates the behavior ran to successful completion.
	ResultSucceeded ResultStatus = "succeeded"

	// ResultFailed indicates the behavior's setup or cyclic execution
	// reported failure, or an internal fault occurred during a step.
	ResultFailed ResultStatus = "failed"

	// ResultCanceled indicates an explicit cancellation was honored.
	ResultCanceled ResultStatus = "canceled"
)

// String returns the string representation of the ResultStatus.
func (s ResultStatus) String() string {
	return string(s)
}

// Outcome is the binary classification the client harness reports for a
// scenario. Every non-success classification collapses into
// OutcomeFailed at this layer; the precise cause is retained separately
// for diagnostics.
type Outcome string

// Outcome constants.
const (
	// OutcomeSucceeded indicates the scenario's goal reached an explicit
	// successful result.
	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeFailed covers every other classification: rejection, failed
	// execution, cancellation, server unavailability, and result timeout.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	return string(o)
}
