package supervisor

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// Instance is the live execution context for one accepted goal. It is
// created on goal acceptance and carries the instance's state, audit
// trail, and eventual result. The behavior-specific mutable state lives
// in the behavior itself, never here.
//
// The scheduling goroutine is the only writer of state and result;
// client goroutines read them through the mutex and wait on done.
type Instance struct {
	handle domain.GoalHandle
	goal   *domain.Goal

	// cancelRequested is the cooperative cancellation flag, checked by
	// the scheduler before every step.
	cancelRequested atomic.Bool

	// done is closed exactly once, when the instance reaches a terminal
	// state and its result is populated.
	done chan struct{}

	mu          sync.Mutex
	state       constants.ExecutionState
	transitions []domain.Transition
	result      *domain.Result
	consumed    bool
	startedAt   time.Time
}

// newInstance creates an instance for an accepted goal in the
// Initializing state, recording the accept transition.
func newInstance(handle domain.GoalHandle, goal *domain.Goal, now time.Time) *Instance {
	inst := &Instance{
		handle:    handle,
		goal:      goal,
		done:      make(chan struct{}),
		state:     constants.StateIdle,
		startedAt: now,
	}
	// Idle → Initializing is the accept edge; it cannot fail.
	_ = transition(inst, constants.StateInitializing, "goal accepted", now)
	return inst
}

// Handle returns the client-held reference for this instance.
func (i *Instance) Handle() domain.GoalHandle {
	return i.handle
}

// State returns the instance's current execution state.
func (i *Instance) State() constants.ExecutionState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Transitions returns a copy of the instance's audit trail.
func (i *Instance) Transitions() []domain.Transition {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]domain.Transition, len(i.transitions))
	copy(out, i.transitions)
	return out
}

// RequestCancel sets the cooperative cancellation flag. Safe to call
// from any goroutine and at any point in the instance's life; the flag
// has no effect once the instance is terminal.
func (i *Instance) RequestCancel() {
	i.cancelRequested.Store(true)
}

// terminal reports whether the instance has reached a terminal state.
func (i *Instance) terminal() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return terminalStates[i.state]
}
