package behavior

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// backupSpeed is the simulated reverse speed in meters per second.
const backupSpeed = 0.25

// BackUp reverses the robot by a commanded distance. The goal command
// has the form "backup:<meters>", e.g. "backup:0.5". Progress is
// simulated against the clock.
type BackUp struct {
	clk    clock.Clock
	logger zerolog.Logger

	distance  float64
	startTime time.Time
}

// NewBackUp creates the back-up recovery behavior.
func NewBackUp(clk clock.Clock, logger zerolog.Logger) *BackUp {
	return &BackUp{
		clk:    clk,
		logger: logger.With().Str("behavior", "backup").Logger(),
	}
}

// Name implements Behavior.
func (b *BackUp) Name() string { return "backup" }

// Initialize parses the commanded reverse distance. A zero or
// unparsable distance fails setup.
func (b *BackUp) Initialize(_ context.Context, goal *domain.Goal) constants.ExecutionState {
	dist, err := parseCommandValue(goal.Command, "backup")
	if err != nil || dist == 0 {
		b.logger.Warn().Str("command", goal.Command).Msg("invalid backup command")
		return constants.StateFailed
	}
	b.distance = math.Abs(dist)
	b.startTime = b.clk.Now()
	b.logger.Info().Float64("distance", b.distance).Msg("backing up")
	return constants.StateRunning
}

// Step checks simulated traveled distance against the target.
func (b *BackUp) Step(_ context.Context) constants.ExecutionState {
	elapsed := b.clk.Now().Sub(b.startTime)
	if elapsed.Seconds()*backupSpeed >= b.distance {
		return constants.StateSucceeded
	}
	return constants.StateRunning
}

// OnCancel stops the reverse motion.
func (b *BackUp) OnCancel(_ context.Context) error {
	b.logger.Info().Msg("backup canceled, stopping motion")
	return nil
}

// Ensure BackUp implements Behavior.
var _ Behavior = (*BackUp)(nil)
