// Package behavior defines the capability set a long-running,
// interruptible behavior implements, plus the concrete recovery
// behaviors shipped with navkit.
//
// A behavior never talks to the transport: the supervisor drives it
// through exactly three extension points. Initialize runs once per
// accepted goal, Step runs once per scheduler tick while the instance
// is running, and OnCancel runs exactly once if cancellation is
// requested mid-flight.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/clock, std lib
//   - MUST NOT import: internal/supervisor, internal/harness, internal/cli
package behavior

import (
	"context"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// Behavior is the capability set the supervisor executes. Implementations
// own their behavior-specific mutable state exclusively; the supervisor
// guarantees the three methods are never invoked concurrently for the
// same instance.
type Behavior interface {
	// Name identifies the behavior for logging and action routing.
	Name() string

	// Initialize parses and validates the goal and performs one-shot
	// setup. It returns StateSucceeded if the behavior completed
	// synchronously, StateFailed if the goal is invalid or setup failed,
	// or StateRunning to continue into the cyclic phase. Initialize is
	// treated as atomic: a cancellation requested while it runs is
	// honored at the next scheduler tick, not mid-flight.
	Initialize(ctx context.Context, goal *domain.Goal) constants.ExecutionState

	// Step performs one bounded-time cyclic update. It returns
	// StateRunning to continue, or StateSucceeded/StateFailed to
	// terminate. Step must be safe to call repeatedly and must not block
	// unboundedly, since it runs on the scheduling goroutine.
	Step(ctx context.Context) constants.ExecutionState

	// OnCancel is invoked exactly once when cancellation is requested
	// while the instance is running. It must bring the behavior to a
	// stop within the supervisor's grace period. A nil return maps the
	// instance's result to canceled; an error maps it to failed.
	OnCancel(ctx context.Context) error
}

// Result payloads are produced by behaviors that compute something for
// the client (e.g. a planner's path). ResultProvider is optional: the
// supervisor checks for it after a successful terminal state.
type ResultProvider interface {
	// ResultPayload returns the payload to attach to the terminal result.
	ResultPayload() *domain.Path
}
