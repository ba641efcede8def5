// Package action defines the goal endpoint contract between clients and
// the behavior supervisor, and provides the in-process server that
// fronts a supervisor behind it. The harness packages depend only on
// the Client interface, so a networked transport can replace the
// in-process server without touching them.
//
// Import rules:
//   - CAN import: internal/supervisor, internal/domain, internal/errors,
//     internal/constants, std lib
//   - MUST NOT import: internal/harness, internal/cli
package action

import (
	"context"
	"time"

	"github.com/navkit/navkit/internal/domain"
)

// Client is the contract every goal endpoint client satisfies. All
// calls are safe for concurrent use.
type Client interface {
	// WaitForServer blocks until the server is accepting goals or the
	// timeout elapses, in which case it returns ErrServerUnavailable.
	WaitForServer(ctx context.Context, timeout time.Duration) error

	// SendGoal submits a goal and returns a handle for it. A structural
	// rejection returns ErrGoalRejected; an unreachable server returns
	// ErrServerUnavailable.
	SendGoal(ctx context.Context, goal *domain.Goal) (domain.GoalHandle, error)

	// GetResult blocks for the terminal result of the referenced goal.
	// A timeout returns ErrResultTimeout and leaves the goal running.
	GetResult(ctx context.Context, handle domain.GoalHandle, timeout time.Duration) (*domain.Result, error)

	// CancelGoal requests cancellation. Cancelling a terminal or unknown
	// goal is a no-op.
	CancelGoal(ctx context.Context, handle domain.GoalHandle) error
}
