// Package domain provides shared domain types for the navkit behavior
// execution system. These types are used across all internal packages to
// ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"strings"
	"time"

	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Goal is the opaque command payload a client supplies at submission
// time. A goal carries either a behavior command string (recoveries) or
// a target pose (planning), never both. Goals are immutable once
// accepted.
//
// Example JSON representation:
//
//	{"command": "Testing success"}
//	{"target": {"position": {"x": 8, "y": 8}}}
type Goal struct {
	// Command is the behavior command string for recovery goals.
	Command string `json:"command,omitempty"`

	// Target is the requested pose for planning goals.
	Target *Pose `json:"target,omitempty"`
}

// Validate performs the structural validation applied before a behavior
// instance is created. A goal must carry exactly one of Command or
// Target, and a command must be non-blank. Failures are reported as
// ErrGoalRejected so no instance is ever admitted for a malformed goal.
func (g *Goal) Validate() error {
	if g == nil {
		return navkiterrors.Wrap(navkiterrors.ErrGoalRejected, "goal is nil")
	}
	hasCommand := strings.TrimSpace(g.Command) != ""
	hasTarget := g.Target != nil
	switch {
	case !hasCommand && !hasTarget:
		return navkiterrors.Wrap(navkiterrors.ErrGoalRejected, "goal carries neither command nor target")
	case hasCommand && hasTarget:
		return navkiterrors.Wrap(navkiterrors.ErrGoalRejected, "goal carries both command and target")
	}
	return nil
}

// GoalHandle is the client-held reference correlating a submitted goal
// to its eventual result. A handle becomes stale once the result has
// been consumed.
type GoalHandle struct {
	// ID is the unique identifier for the accepted goal (UUID).
	ID string `json:"id"`

	// AcceptedAt is when the goal was admitted by the supervisor.
	AcceptedAt time.Time `json:"accepted_at"`
}

// Transition records one execution state change of a behavior instance.
// The supervisor appends transitions as an audit trail; the observed
// sequence is always non-decreasing along the state machine graph.
type Transition struct {
	// FromState is the state before the transition.
	FromState constants.ExecutionState `json:"from_state"`

	// ToState is the state after the transition.
	ToState constants.ExecutionState `json:"to_state"`

	// Timestamp is when the transition occurred.
	Timestamp time.Time `json:"timestamp"`

	// Reason optionally explains why the transition happened.
	Reason string `json:"reason,omitempty"`
}
