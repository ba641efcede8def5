// Package supervisor implements the goal-oriented execution protocol:
// a state machine that accepts one goal at a time, runs the behavior's
// one-shot initialization, drives its cyclic update at a fixed period
// until a terminal outcome, and stays responsive to cancellation and
// preemption throughout.
//
// This file implements the execution state machine, which enforces
// valid state transitions and maintains an audit trail of all changes.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/behavior, internal/clock, std lib
//   - MUST NOT import: internal/harness, internal/cli
package supervisor

import (
	"fmt"
	"time"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// ValidTransitions defines all allowed state transitions for a behavior
// instance. Format: from_state -> []to_states
//
// The state machine follows this flow:
//
//	Idle → Initializing
//	Initializing → Running, Succeeded, Failed
//	Running → Canceling, Succeeded, Failed
//	Canceling → Succeeded, Failed
//
// Succeeded and Failed are terminal: an instance never leaves them. A
// honored cancellation lands in Failed with a canceled result status.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.ExecutionState][]constants.ExecutionState{
	constants.StateIdle: {constants.StateInitializing},
	constants.StateInitializing: {
		constants.StateRunning,
		constants.StateSucceeded,
		constants.StateFailed,
	},
	constants.StateRunning: {
		constants.StateCanceling,
		constants.StateSucceeded,
		constants.StateFailed,
	},
	constants.StateCanceling: {constants.StateSucceeded, constants.StateFailed},
}

// terminalStates defines states where no further transitions are
// allowed. Intentionally duplicated from ValidTransitions for O(1)
// lookup. MAINTENANCE: when adding new states, update both.
//
//nolint:gochecknoglobals // Read-only lookup table for terminal state checks
var terminalStates = map[constants.ExecutionState]bool{
	constants.StateSucceeded: true,
	constants.StateFailed:    true,
}

// IsValidTransition checks if a transition from one state to another is
// allowed. Returns false for transitions from terminal states or to the
// same state.
func IsValidTransition(from, to constants.ExecutionState) bool {
	if from == to {
		return false
	}
	validTargets, exists := ValidTransitions[from]
	if !exists {
		return false // Terminal state or unknown state
	}
	for _, target := range validTargets {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalState returns true for states where no further transitions
// are allowed. Terminal states: Succeeded, Failed.
func IsTerminalState(state constants.ExecutionState) bool {
	return terminalStates[state]
}

// transition validates and applies a state change to the instance,
// recording it in the audit trail. The caller must hold inst.mu.
func transition(inst *Instance, to constants.ExecutionState, reason string, now time.Time) error {
	from := inst.state
	if !IsValidTransition(from, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			navkiterrors.ErrInvalidTransition, from, to)
	}

	inst.transitions = append(inst.transitions, domain.Transition{
		FromState: from,
		ToState:   to,
		Timestamp: now,
		Reason:    reason,
	})
	inst.state = to
	return nil
}
