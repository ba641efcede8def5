// Package harness drives a behavior server as a black box and judges
// pass/fail: the conformance harness submits command goals and
// classifies outcomes, and the planning harness additionally validates
// returned paths against a costmap and runs randomized batch trials.
//
// Import rules:
//   - CAN import: internal/action, internal/behavior, internal/costmap,
//     internal/domain, internal/errors, internal/constants, std lib
//   - MUST NOT import: internal/supervisor (only through action.Client),
//     internal/cli
package harness

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/action"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Timeouts bundles the harness's wait budgets.
type Timeouts struct {
	// ServerWait bounds how long SendCommand waits for the server to
	// come up before reporting it unavailable.
	ServerWait time.Duration

	// Result bounds how long GetOutcome waits for a terminal result.
	Result time.Duration
}

// DefaultTimeouts returns the standard harness wait budgets.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ServerWait: constants.DefaultServerWaitTimeout,
		Result:     constants.DefaultResultTimeout,
	}
}

// Harness is the client-side conformance driver. It talks to the
// server only through the action.Client contract, so it exercises the
// same surface a remote client would.
type Harness struct {
	client   action.Client
	logger   zerolog.Logger
	timeouts Timeouts
}

// New creates a harness over the given endpoint client.
func New(client action.Client, logger zerolog.Logger, timeouts Timeouts) *Harness {
	if timeouts.ServerWait <= 0 {
		timeouts.ServerWait = constants.DefaultServerWaitTimeout
	}
	if timeouts.Result <= 0 {
		timeouts.Result = constants.DefaultResultTimeout
	}
	return &Harness{
		client:   client,
		logger:   logger.With().Str("component", "harness").Logger(),
		timeouts: timeouts,
	}
}

// SendCommand waits for server availability and submits a command
// goal. Server-not-ready surfaces as ErrServerUnavailable, a declined
// goal as ErrGoalRejected; the two are never conflated.
func (h *Harness) SendCommand(ctx context.Context, command string) (domain.GoalHandle, error) {
	return h.send(ctx, &domain.Goal{Command: command})
}

// SendTarget submits a target-pose goal, used by the planning harness.
func (h *Harness) SendTarget(ctx context.Context, target domain.Pose) (domain.GoalHandle, error) {
	return h.send(ctx, &domain.Goal{Target: &target})
}

func (h *Harness) send(ctx context.Context, goal *domain.Goal) (domain.GoalHandle, error) {
	var zero domain.GoalHandle

	if err := h.client.WaitForServer(ctx, h.timeouts.ServerWait); err != nil {
		h.logger.Error().Err(err).Msg("server unavailable")
		return zero, err
	}

	handle, err := h.client.SendGoal(ctx, goal)
	if err != nil {
		h.logger.Warn().Err(err).Str("command", goal.Command).Msg("goal declined")
		return zero, err
	}
	return handle, nil
}

// GetOutcome awaits the result and collapses it to a binary verdict:
// only an explicit succeeded status counts, everything else (failure,
// cancellation, result timeout, transport error) is a failure. The
// finer classification is logged for diagnostics.
func (h *Harness) GetOutcome(ctx context.Context, handle domain.GoalHandle) constants.Outcome {
	result, err := h.client.GetResult(ctx, handle, h.timeouts.Result)
	switch {
	case errors.Is(err, navkiterrors.ErrResultTimeout):
		h.logger.Warn().Str("goal_id", handle.ID).Msg("no result within wait budget")
		return constants.OutcomeFailed
	case err != nil:
		h.logger.Warn().Err(err).Str("goal_id", handle.ID).Msg("result retrieval failed")
		return constants.OutcomeFailed
	}

	switch result.Status {
	case constants.ResultSucceeded:
		return constants.OutcomeSucceeded
	case constants.ResultCanceled:
		h.logger.Info().Str("goal_id", handle.ID).Msg("goal was canceled")
		return constants.OutcomeFailed
	default:
		h.logger.Info().Str("goal_id", handle.ID).Str("error", result.Error).Msg("goal failed")
		return constants.OutcomeFailed
	}
}

// GetPath awaits the result and returns its path payload, used by the
// planning harness where the outcome alone is not enough.
func (h *Harness) GetPath(ctx context.Context, handle domain.GoalHandle) (*domain.Path, error) {
	result, err := h.client.GetResult(ctx, handle, h.timeouts.Result)
	if err != nil {
		return nil, err
	}
	if result.Status == constants.ResultCanceled {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrCanceled, "goal %s", handle.ID)
	}
	if result.Status != constants.ResultSucceeded {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrExecutionFailed,
			"goal %s finished %s: %s", handle.ID, result.Status, result.Error)
	}
	if result.Path.Empty() {
		return nil, navkiterrors.Wrapf(navkiterrors.ErrPathEmpty, "goal %s", handle.ID)
	}
	return result.Path, nil
}

// Cancel forwards a cancellation request.
func (h *Harness) Cancel(ctx context.Context, handle domain.GoalHandle) error {
	return h.client.CancelGoal(ctx, handle)
}
