package behavior

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// spinRate is the simulated angular speed in radians per second.
const spinRate = 0.75

// Spin rotates the robot in place by a commanded angle. The goal command
// has the form "spin:<radians>", e.g. "spin:1.57". Progress is simulated
// against the clock rather than real odometry.
type Spin struct {
	clk    clock.Clock
	logger zerolog.Logger

	targetYaw float64
	startTime time.Time
}

// NewSpin creates the spin-in-place recovery behavior.
func NewSpin(clk clock.Clock, logger zerolog.Logger) *Spin {
	return &Spin{
		clk:    clk,
		logger: logger.With().Str("behavior", "spin").Logger(),
	}
}

// Name implements Behavior.
func (s *Spin) Name() string { return "spin" }

// Initialize parses the commanded rotation angle. A zero or unparsable
// angle fails setup.
func (s *Spin) Initialize(_ context.Context, goal *domain.Goal) constants.ExecutionState {
	yaw, err := parseCommandValue(goal.Command, "spin")
	if err != nil || yaw == 0 {
		s.logger.Warn().Str("command", goal.Command).Msg("invalid spin command")
		return constants.StateFailed
	}
	s.targetYaw = math.Abs(yaw)
	s.startTime = s.clk.Now()
	s.logger.Info().Float64("target_yaw", yaw).Msg("spinning in place")
	return constants.StateRunning
}

// Step checks simulated rotation progress against the target angle.
func (s *Spin) Step(_ context.Context) constants.ExecutionState {
	elapsed := s.clk.Now().Sub(s.startTime)
	if elapsed.Seconds()*spinRate >= s.targetYaw {
		return constants.StateSucceeded
	}
	return constants.StateRunning
}

// OnCancel stops the rotation where it is.
func (s *Spin) OnCancel(_ context.Context) error {
	s.logger.Info().Msg("spin canceled, stopping rotation")
	return nil
}

// parseCommandValue extracts the numeric argument from a command of the
// form "<name>:<value>". Returns an error for any other shape.
func parseCommandValue(command, name string) (float64, error) {
	rest, ok := strings.CutPrefix(command, name+":")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(strings.TrimSpace(rest), 64)
}

// Ensure Spin implements Behavior.
var _ Behavior = (*Spin)(nil)
