package action

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
	"github.com/navkit/navkit/internal/supervisor"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	b := behavior.NewConformance(clock.RealClock{}, zerolog.Nop(), 20*time.Millisecond)
	sup := supervisor.New(b, supervisor.Config{
		CyclePeriod: 2 * time.Millisecond,
		CancelGrace: 100 * time.Millisecond,
	}, zerolog.Nop())
	srv := NewServer(sup, zerolog.Nop())
	t.Cleanup(srv.Stop)
	return srv
}

func TestServer_WaitBeforeStartTimesOut(t *testing.T) {
	srv := newTestServer(t)

	err := srv.WaitForServer(context.Background(), 10*time.Millisecond)
	assert.ErrorIs(t, err, navkiterrors.ErrServerUnavailable)
}

func TestServer_WaitAfterStartReturnsImmediately(t *testing.T) {
	srv := newTestServer(t)
	srv.Start()

	assert.NoError(t, srv.WaitForServer(context.Background(), time.Millisecond))
}

func TestServer_SendGoalBeforeStartRefused(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.SendGoal(context.Background(), &domain.Goal{Command: behavior.CommandSuccess})
	assert.ErrorIs(t, err, navkiterrors.ErrServerUnavailable)
}

func TestServer_GoalRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	srv.Start()
	ctx := context.Background()

	require.NoError(t, srv.WaitForServer(ctx, time.Second))

	handle, err := srv.SendGoal(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	result, err := srv.GetResult(ctx, handle, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultSucceeded, result.Status)
}

func TestServer_CancelGoalIsIdempotent(t *testing.T) {
	srv := newTestServer(t)
	srv.Start()
	ctx := context.Background()

	handle, err := srv.SendGoal(ctx, &domain.Goal{Command: behavior.CommandSuccess})
	require.NoError(t, err)

	require.NoError(t, srv.CancelGoal(ctx, handle))
	require.NoError(t, srv.CancelGoal(ctx, handle))
	require.NoError(t, srv.CancelGoal(ctx, domain.GoalHandle{ID: "unknown"}))

	result, err := srv.GetResult(ctx, handle, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultCanceled, result.Status)
}

func TestServer_StoppedServerRefusesTraffic(t *testing.T) {
	srv := newTestServer(t)
	srv.Start()
	srv.Stop()

	_, err := srv.SendGoal(context.Background(), &domain.Goal{Command: behavior.CommandSuccess})
	assert.ErrorIs(t, err, navkiterrors.ErrServerUnavailable)

	err = srv.WaitForServer(context.Background(), time.Millisecond)
	assert.ErrorIs(t, err, navkiterrors.ErrServerUnavailable)
}
