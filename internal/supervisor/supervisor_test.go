package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Timings are kept short so the scheduler runs many real ticks without
// slowing the suite down.
const (
	testCyclePeriod = 2 * time.Millisecond
	testMotion      = 20 * time.Millisecond
	testAwait       = 2 * time.Second
)

func newTestSupervisor(t *testing.T, motion time.Duration) *Supervisor {
	t.Helper()
	b := behavior.NewConformance(clock.RealClock{}, zerolog.Nop(), motion)
	s := New(b, Config{CyclePeriod: testCyclePeriod, CancelGrace: 100 * time.Millisecond}, zerolog.Nop())
	t.Cleanup(s.Close)
	return s
}

func TestSupervisor_ConformanceScenarios(t *testing.T) {
	tests := []struct {
		name       string
		command    string
		wantStatus constants.ResultStatus
	}{
		{"success", behavior.CommandSuccess, constants.ResultSucceeded},
		{"failure on run", behavior.CommandFailOnRun, constants.ResultFailed},
		{"failure on init", behavior.CommandFailOnInit, constants.ResultFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSupervisor(t, testMotion)
			ctx := context.Background()

			handle, err := s.Submit(ctx, &domain.Goal{Command: tt.command})
			require.NoError(t, err)
			require.NotEmpty(t, handle.ID)

			result, err := s.AwaitResult(ctx, handle, testAwait)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.CompletedAt.Before(result.StartedAt))
		})
	}
}

func TestSupervisor_RejectsInvalidGoal(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	_, err := s.Submit(ctx, nil)
	assert.ErrorIs(t, err, navkiterrors.ErrGoalRejected)

	_, err = s.Submit(ctx, &domain.Goal{})
	assert.ErrorIs(t, err, navkiterrors.ErrGoalRejected)

	// Rejection never creates an instance.
	assert.Equal(t, constants.StateIdle, s.ActiveState())
}

func TestSupervisor_CancelYieldsCanceledResult(t *testing.T) {
	s := newTestSupervisor(t, time.Minute)
	ctx := context.Background()

	handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	s.Cancel(handle)

	result, err := s.AwaitResult(ctx, handle, testAwait)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultCanceled, result.Status)
}

func TestSupervisor_CancelIsIdempotent(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	result, err := s.AwaitResult(ctx, handle, testAwait)
	require.NoError(t, err)
	require.Equal(t, constants.ResultSucceeded, result.Status)

	// Cancel after terminal, repeated cancel, and cancel of an unknown
	// handle are all silent no-ops.
	s.Cancel(handle)
	s.Cancel(handle)
	s.Cancel(domain.GoalHandle{ID: "no-such-goal"})
}

func TestSupervisor_PreemptionCancelsActiveGoal(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	first, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	// The second submission preempts the first: the old instance must be
	// terminal before the new one is admitted.
	second, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	firstResult, err := s.AwaitResult(ctx, first, testAwait)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultCanceled, firstResult.Status)

	secondResult, err := s.AwaitResult(ctx, second, testAwait)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultSucceeded, secondResult.Status)
}

func TestSupervisor_AwaitTimeoutLeavesGoalRunning(t *testing.T) {
	s := newTestSupervisor(t, 150*time.Millisecond)
	ctx := context.Background()

	handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	_, err = s.AwaitResult(ctx, handle, time.Millisecond)
	require.ErrorIs(t, err, navkiterrors.ErrResultTimeout)

	// The timeout affected only the wait; the goal runs to completion
	// and a later wait on the same handle retrieves its result.
	result, err := s.AwaitResult(ctx, handle, testAwait)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultSucceeded, result.Status)
}

func TestSupervisor_ConsumedHandleIsStale(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	_, err = s.AwaitResult(ctx, handle, testAwait)
	require.NoError(t, err)

	_, err = s.AwaitResult(ctx, handle, testAwait)
	assert.ErrorIs(t, err, navkiterrors.ErrHandleStale)
}

func TestSupervisor_UnknownHandleIsStale(t *testing.T) {
	s := newTestSupervisor(t, testMotion)

	_, err := s.AwaitResult(context.Background(), domain.GoalHandle{ID: "never-issued"}, time.Millisecond)
	assert.ErrorIs(t, err, navkiterrors.ErrHandleStale)
}

func TestSupervisor_TransitionsAreMonotonic(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	inst, ok := s.Lookup(handle)
	require.True(t, ok)

	result, err := s.AwaitResult(ctx, handle, testAwait)
	require.NoError(t, err)
	require.Equal(t, constants.ResultSucceeded, result.Status)

	trail := inst.Transitions()
	require.NotEmpty(t, trail)
	for i, tr := range trail {
		assert.True(t, IsValidTransition(tr.FromState, tr.ToState),
			"transition %d: %s -> %s", i, tr.FromState, tr.ToState)
		if i > 0 {
			assert.Equal(t, trail[i-1].ToState, tr.FromState, "trail must be contiguous")
		}
	}
	assert.True(t, IsTerminalState(trail[len(trail)-1].ToState))
}

func TestSupervisor_SequentialGoalsAreIndependent(t *testing.T) {
	s := newTestSupervisor(t, testMotion)
	ctx := context.Background()

	for range 3 {
		handle, err := s.Submit(ctx, &domain.Goal{Command: behavior.CommandSuccess})
		require.NoError(t, err)

		result, err := s.AwaitResult(ctx, handle, testAwait)
		require.NoError(t, err)
		assert.Equal(t, constants.ResultSucceeded, result.Status)
	}
	assert.Equal(t, constants.StateIdle, s.ActiveState())
}

// faultyBehavior panics in the phase named by mode.
type faultyBehavior struct {
	mode string
}

func (f *faultyBehavior) Name() string { return "faulty" }

func (f *faultyBehavior) Initialize(_ context.Context, _ *domain.Goal) constants.ExecutionState {
	if f.mode == "init" {
		panic("boom in initialize")
	}
	return constants.StateRunning
}

func (f *faultyBehavior) Step(_ context.Context) constants.ExecutionState {
	panic("boom in step")
}

func (f *faultyBehavior) OnCancel(_ context.Context) error { return nil }

func TestSupervisor_BehaviorPanicBecomesFailure(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{"panic during initialize", "init"},
		{"panic during step", "step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&faultyBehavior{mode: tt.mode},
				Config{CyclePeriod: testCyclePeriod, CancelGrace: 100 * time.Millisecond}, zerolog.Nop())
			t.Cleanup(s.Close)

			handle, err := s.Submit(context.Background(), &domain.Goal{Command: behavior.CommandSuccess})
			require.NoError(t, err)

			result, err := s.AwaitResult(context.Background(), handle, testAwait)
			require.NoError(t, err)
			assert.Equal(t, constants.ResultFailed, result.Status)
			assert.Contains(t, result.Error, "internal fault")
		})
	}
}
