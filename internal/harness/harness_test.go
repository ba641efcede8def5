package harness

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navkit/internal/action"
	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
	"github.com/navkit/navkit/internal/supervisor"
)

func testTimeouts() Timeouts {
	return Timeouts{ServerWait: 100 * time.Millisecond, Result: 2 * time.Second}
}

// newConformanceStack wires a full in-process stack: conformance
// behavior, supervisor, action server, harness.
func newConformanceStack(t *testing.T, motion time.Duration) (*action.Server, *Harness) {
	t.Helper()
	b := behavior.NewConformance(clock.RealClock{}, zerolog.Nop(), motion)
	sup := supervisor.New(b, supervisor.Config{
		CyclePeriod: 2 * time.Millisecond,
		CancelGrace: 100 * time.Millisecond,
	}, zerolog.Nop())
	srv := action.NewServer(sup, zerolog.Nop())
	t.Cleanup(srv.Stop)
	return srv, New(srv, zerolog.Nop(), testTimeouts())
}

func TestHarness_ConformanceSuitePasses(t *testing.T) {
	srv, h := newConformanceStack(t, 20*time.Millisecond)
	srv.Start()

	results, err := h.RunAll(context.Background(), ConformanceScenarios())
	require.NoError(t, err)
	require.Len(t, results, len(ConformanceScenarios()))
	for _, res := range results {
		assert.True(t, res.Passed(), "scenario %s: want %s, got %s",
			res.Scenario.Name, res.Scenario.Want, res.Got)
	}
}

func TestHarness_ServerUnavailableIsNotRejection(t *testing.T) {
	_, h := newConformanceStack(t, 20*time.Millisecond)
	// Server never started.

	_, err := h.SendCommand(context.Background(), behavior.CommandSuccess)
	assert.ErrorIs(t, err, navkiterrors.ErrServerUnavailable)
	assert.NotErrorIs(t, err, navkiterrors.ErrGoalRejected)
}

func TestHarness_MalformedCommandIsRejected(t *testing.T) {
	srv, h := newConformanceStack(t, 20*time.Millisecond)
	srv.Start()

	_, err := h.SendCommand(context.Background(), "")
	assert.ErrorIs(t, err, navkiterrors.ErrGoalRejected)
}

func TestHarness_OutcomeCollapsesTimeoutToFailure(t *testing.T) {
	srv, h := newConformanceStack(t, time.Minute)
	srv.Start()
	h.timeouts.Result = 10 * time.Millisecond

	handle, err := h.SendCommand(context.Background(), behavior.CommandSuccess)
	require.NoError(t, err)

	assert.Equal(t, constants.OutcomeFailed, h.GetOutcome(context.Background(), handle))
}

func TestHarness_OutcomeCollapsesCancellationToFailure(t *testing.T) {
	srv, h := newConformanceStack(t, time.Minute)
	srv.Start()
	ctx := context.Background()

	handle, err := h.SendCommand(ctx, behavior.CommandSuccess)
	require.NoError(t, err)
	require.NoError(t, h.Cancel(ctx, handle))

	assert.Equal(t, constants.OutcomeFailed, h.GetOutcome(ctx, handle))
}

func TestScenarioByName(t *testing.T) {
	sc, err := ScenarioByName("failure_on_init")
	require.NoError(t, err)
	assert.Equal(t, behavior.CommandFailOnInit, sc.Command)
	assert.Equal(t, constants.OutcomeFailed, sc.Want)

	_, err = ScenarioByName("no_such_scenario")
	assert.ErrorIs(t, err, navkiterrors.ErrUnknownScenario)
}

func TestRunScenario_MismatchReported(t *testing.T) {
	srv, h := newConformanceStack(t, 20*time.Millisecond)
	srv.Start()

	res := h.RunScenario(context.Background(), Scenario{
		Name:    "expected_success_but_fails",
		Command: behavior.CommandFailOnInit,
		Want:    constants.OutcomeSucceeded,
	})
	assert.False(t, res.Passed())
	assert.Equal(t, constants.OutcomeFailed, res.Got)

	_, err := h.RunAll(context.Background(), []Scenario{res.Scenario})
	assert.ErrorIs(t, err, navkiterrors.ErrScenarioFailed)
}
