package behavior

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// Wait holds the robot still for a commanded duration. The goal command
// has the form "wait:<duration>", e.g. "wait:2s".
type Wait struct {
	clk    clock.Clock
	logger zerolog.Logger

	duration  time.Duration
	startTime time.Time
}

// NewWait creates the wait recovery behavior.
func NewWait(clk clock.Clock, logger zerolog.Logger) *Wait {
	return &Wait{
		clk:    clk,
		logger: logger.With().Str("behavior", "wait").Logger(),
	}
}

// Name implements Behavior.
func (w *Wait) Name() string { return "wait" }

// Initialize parses the commanded wait duration. A non-positive or
// unparsable duration fails setup.
func (w *Wait) Initialize(_ context.Context, goal *domain.Goal) constants.ExecutionState {
	rest, ok := strings.CutPrefix(goal.Command, "wait:")
	if !ok {
		w.logger.Warn().Str("command", goal.Command).Msg("invalid wait command")
		return constants.StateFailed
	}
	d, err := time.ParseDuration(strings.TrimSpace(rest))
	if err != nil || d <= 0 {
		w.logger.Warn().Str("command", goal.Command).Msg("invalid wait duration")
		return constants.StateFailed
	}
	w.duration = d
	w.startTime = w.clk.Now()
	w.logger.Info().Dur("duration", d).Msg("waiting")
	return constants.StateRunning
}

// Step succeeds once the commanded duration has elapsed.
func (w *Wait) Step(_ context.Context) constants.ExecutionState {
	if w.clk.Now().Sub(w.startTime) >= w.duration {
		return constants.StateSucceeded
	}
	return constants.StateRunning
}

// OnCancel ends the wait early.
func (w *Wait) OnCancel(_ context.Context) error {
	w.logger.Info().Msg("wait canceled")
	return nil
}

// Ensure Wait implements Behavior.
var _ Behavior = (*Wait)(nil)
