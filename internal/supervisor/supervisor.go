package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/ctxutil"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Config holds timing configuration for the supervisor.
type Config struct {
	// CyclePeriod is the fixed period between scheduler ticks while an
	// instance is running.
	CyclePeriod time.Duration

	// CancelGrace bounds how long OnCancel may take to wind a behavior
	// down after cancellation is requested.
	CancelGrace time.Duration
}

// DefaultConfig returns sensible defaults for control-loop execution.
func DefaultConfig() Config {
	return Config{
		CyclePeriod: constants.DefaultCyclePeriod,
		CancelGrace: constants.DefaultCancelGrace,
	}
}

// Supervisor runs exactly one behavior instance at a time through the
// accept → initialize → cyclic step → terminate protocol. Clients
// interact only through Submit, Cancel, and AwaitResult; the behavior
// is driven strictly sequentially on a single scheduling goroutine per
// instance, so no two Step calls ever overlap.
type Supervisor struct {
	behavior behavior.Behavior
	cfg      Config
	clk      clock.Clock
	logger   zerolog.Logger

	baseCtx context.Context
	stop    context.CancelFunc

	// submitMu serializes goal admission so preemption fully tears down
	// the old instance before the new one starts.
	submitMu sync.Mutex

	mu      sync.Mutex
	active  *Instance
	pending map[string]*Instance
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithClock sets the clock used for timestamps. Tests use a fake clock
// so behavior durations do not require real sleeping.
func WithClock(clk clock.Clock) Option {
	return func(s *Supervisor) {
		s.clk = clk
	}
}

// New creates a supervisor for the given behavior. The supervisor is
// idle until the first Submit; Close stops any in-flight instance.
func New(b behavior.Behavior, cfg Config, logger zerolog.Logger, opts ...Option) *Supervisor {
	if cfg.CyclePeriod <= 0 {
		cfg.CyclePeriod = constants.DefaultCyclePeriod
	}
	if cfg.CancelGrace <= 0 {
		cfg.CancelGrace = constants.DefaultCancelGrace
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Supervisor{
		behavior: b,
		cfg:      cfg,
		clk:      clock.RealClock{},
		logger:   logger.With().Str("component", "supervisor").Str("behavior", b.Name()).Logger(),
		baseCtx:  ctx,
		stop:     cancel,
		pending:  make(map[string]*Instance),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close stops the supervisor. An in-flight instance is canceled through
// the normal cancellation path on its next tick.
func (s *Supervisor) Close() {
	s.stop()
}

// Submit admits a new goal. If an instance is already active, it is
// preempted: canceled and awaited to its terminal state before the new
// goal is admitted. Structural validation failures reject the goal
// before any instance is created.
func (s *Supervisor) Submit(ctx context.Context, goal *domain.Goal) (domain.GoalHandle, error) {
	var zero domain.GoalHandle

	if err := ctxutil.Canceled(ctx); err != nil {
		return zero, err
	}
	if err := goal.Validate(); err != nil {
		return zero, err
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	s.mu.Lock()
	prev := s.active
	s.mu.Unlock()

	if prev != nil && !prev.terminal() {
		s.logger.Info().Str("goal_id", prev.handle.ID).Msg("preempting active goal")
		prev.RequestCancel()
		select {
		case <-prev.done:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	now := s.clk.Now()
	handle := domain.GoalHandle{ID: uuid.NewString(), AcceptedAt: now}
	inst := newInstance(handle, goal, now)

	s.mu.Lock()
	s.active = inst
	s.pending[handle.ID] = inst
	s.mu.Unlock()

	s.logger.Info().Str("goal_id", handle.ID).Str("command", goal.Command).Msg("goal accepted")
	go s.run(inst)

	return handle, nil
}

// Cancel requests cancellation of the instance the handle refers to.
// Calling Cancel on an already-terminal or unknown instance is a no-op,
// never an error: cancellation is idempotent.
func (s *Supervisor) Cancel(handle domain.GoalHandle) {
	s.mu.Lock()
	inst, ok := s.pending[handle.ID]
	s.mu.Unlock()
	if !ok || inst.terminal() {
		return
	}
	s.logger.Info().Str("goal_id", handle.ID).Msg("cancellation requested")
	inst.RequestCancel()
}

// AwaitResult blocks until the instance reaches a terminal state or the
// timeout elapses. A timeout does not cancel the instance: it keeps
// running, and a later AwaitResult on the same handle retrieves its
// eventual result. Once a result has been consumed the handle is stale.
func (s *Supervisor) AwaitResult(ctx context.Context, handle domain.GoalHandle, timeout time.Duration) (*domain.Result, error) {
	s.mu.Lock()
	inst, ok := s.pending[handle.ID]
	s.mu.Unlock()
	if !ok {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrHandleStale, "goal %s", handle.ID)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-inst.done:
	case <-timer.C:
		return nil, navkiterrors.Wrapf(navkiterrors.ErrResultTimeout, "goal %s after %s", handle.ID, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	inst.mu.Lock()
	if inst.consumed {
		inst.mu.Unlock()
		return nil, navkiterrors.Wrapf(navkiterrors.ErrHandleStale, "goal %s result already consumed", handle.ID)
	}
	inst.consumed = true
	result := inst.result
	inst.mu.Unlock()

	// Result consumed: release the instance and return the supervisor
	// to idle if this was the active one.
	s.mu.Lock()
	delete(s.pending, handle.ID)
	if s.active == inst {
		s.active = nil
	}
	s.mu.Unlock()

	return result, nil
}

// ActiveState returns the execution state of the active instance, or
// StateIdle when the supervisor has no active goal.
func (s *Supervisor) ActiveState() constants.ExecutionState {
	s.mu.Lock()
	inst := s.active
	s.mu.Unlock()
	if inst == nil {
		return constants.StateIdle
	}
	return inst.State()
}

// Lookup returns the instance for a handle whose result has not been
// consumed yet.
func (s *Supervisor) Lookup(handle domain.GoalHandle) (*Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.pending[handle.ID]
	return inst, ok
}

// run is the cyclic scheduler for one instance. It owns every behavior
// call for the instance's lifetime, which guarantees Initialize, Step,
// and OnCancel never overlap.
func (s *Supervisor) run(inst *Instance) {
	st, fault := s.safeInitialize(s.baseCtx, inst.goal)
	switch st {
	case constants.StateSucceeded:
		s.finalize(inst, constants.StateSucceeded, constants.ResultSucceeded, "")
		return
	case constants.StateFailed:
		if fault == "" {
			fault = "behavior initialization failed"
		}
		s.finalize(inst, constants.StateFailed, constants.ResultFailed, fault)
		return
	}

	s.setState(inst, constants.StateRunning, "initialization complete")

	ticker := time.NewTicker(s.cfg.CyclePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.baseCtx.Done():
			s.windDown(inst, "supervisor shutting down")
			return
		case <-ticker.C:
			// The cancellation flag is checked before every step. This is
			// also where a cancel requested during Initialize lands.
			if inst.cancelRequested.Load() {
				s.windDown(inst, "cancel requested")
				return
			}

			st, fault := s.safeStep(s.baseCtx)
			switch st {
			case constants.StateSucceeded:
				s.finalize(inst, constants.StateSucceeded, constants.ResultSucceeded, "")
				return
			case constants.StateFailed:
				// Failure is terminal, never retried by the scheduler.
				if fault == "" {
					fault = "behavior execution failed"
				}
				s.finalize(inst, constants.StateFailed, constants.ResultFailed, fault)
				return
			}
		}
	}
}

// windDown runs the behavior's cancellation path: Running → Canceling,
// OnCancel bounded by the grace period, then a terminal state with a
// canceled (or failed, if OnCancel errored) result.
func (s *Supervisor) windDown(inst *Instance, reason string) {
	s.setState(inst, constants.StateCanceling, reason)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CancelGrace)
	defer cancel()

	if err := s.safeCancel(ctx); err != nil {
		s.finalize(inst, constants.StateFailed, constants.ResultFailed,
			fmt.Sprintf("cancel failed: %v", err))
		return
	}
	s.finalize(inst, constants.StateFailed, constants.ResultCanceled, reason)
}

// safeInitialize invokes the behavior's Initialize, mapping a panic to
// a failed state so a fault never leaves the instance pending.
func (s *Supervisor) safeInitialize(ctx context.Context, goal *domain.Goal) (st constants.ExecutionState, fault string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Any("panic", r).Msg("behavior panicked during initialize")
			st = constants.StateFailed
			fault = fmt.Sprintf("internal fault during initialize: %v", r)
		}
	}()
	return s.behavior.Initialize(ctx, goal), ""
}

// safeStep invokes the behavior's Step, mapping a panic to a failed
// state.
func (s *Supervisor) safeStep(ctx context.Context) (st constants.ExecutionState, fault string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Any("panic", r).Msg("behavior panicked during step")
			st = constants.StateFailed
			fault = fmt.Sprintf("internal fault during step: %v", r)
		}
	}()
	return s.behavior.Step(ctx), ""
}

// safeCancel invokes the behavior's OnCancel, mapping a panic to an
// error.
func (s *Supervisor) safeCancel(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Any("panic", r).Msg("behavior panicked during cancel")
			err = fmt.Errorf("internal fault during cancel: %v", r)
		}
	}()
	return s.behavior.OnCancel(ctx)
}

// setState applies a non-terminal transition, logging rather than
// propagating an invalid one (which would be a supervisor bug).
func (s *Supervisor) setState(inst *Instance, to constants.ExecutionState, reason string) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	if err := transition(inst, to, reason, s.clk.Now()); err != nil {
		s.logger.Error().Err(err).Str("goal_id", inst.handle.ID).Msg("state transition rejected")
	}
}

// finalize moves the instance to its terminal state, populates the
// result exactly once, and wakes every waiter.
func (s *Supervisor) finalize(inst *Instance, state constants.ExecutionState, status constants.ResultStatus, errMsg string) {
	now := s.clk.Now()

	result := &domain.Result{
		Status:      status,
		Error:       errMsg,
		StartedAt:   inst.startedAt,
		CompletedAt: now,
	}
	if status == constants.ResultSucceeded {
		if provider, ok := s.behavior.(behavior.ResultProvider); ok {
			result.Path = provider.ResultPayload()
		}
	}

	inst.mu.Lock()
	if err := transition(inst, state, string(status), now); err != nil {
		s.logger.Error().Err(err).Str("goal_id", inst.handle.ID).Msg("terminal transition rejected")
	}
	inst.result = result
	inst.mu.Unlock()

	close(inst.done)

	s.logger.Info().
		Str("goal_id", inst.handle.ID).
		Str("status", status.String()).
		Dur("elapsed", now.Sub(inst.startedAt)).
		Msg("behavior instance finished")
}
