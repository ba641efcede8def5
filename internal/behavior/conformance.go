package behavior

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// Conformance command strings. The conformance behavior's outcome is
// fully determined by the submitted command, which lets the client
// harness exercise every path of the execution protocol.
const (
	// CommandSuccess initializes normally and succeeds after the
	// simulated motion duration elapses.
	CommandSuccess = "Testing success"

	// CommandFailOnRun initializes successfully but leaves the behavior
	// not fully initialized for cyclic execution, so the first Step fails.
	CommandFailOnRun = "Testing failure on run"

	// CommandFailOnInit fails Initialize itself; the cyclic phase never runs.
	CommandFailOnInit = "Testing failure on init"
)

// Conformance is the test behavior used by the recovery conformance
// scenarios. A real recovery would set the robot in motion on the first
// Step and check robot state on subsequent calls; this one pretends the
// motion takes a fixed amount of time.
type Conformance struct {
	clk            clock.Clock
	logger         zerolog.Logger
	motionDuration time.Duration

	initialized bool
	command     string
	startTime   time.Time
}

// NewConformance creates the conformance behavior. The motion duration
// controls how long the simulated motion takes before Step reports
// success; a zero duration falls back to the default.
func NewConformance(clk clock.Clock, logger zerolog.Logger, motionDuration time.Duration) *Conformance {
	if motionDuration <= 0 {
		motionDuration = constants.DefaultMotionDuration
	}
	return &Conformance{
		clk:            clk,
		logger:         logger.With().Str("behavior", "conformance").Logger(),
		motionDuration: motionDuration,
	}
}

// Name implements Behavior.
func (c *Conformance) Name() string { return "conformance" }

// Initialize catches the command and resets per-instance state. The
// outcome is defined by the command string: the success and
// failure-on-run commands continue into the cyclic phase, anything else
// fails setup.
func (c *Conformance) Initialize(_ context.Context, goal *domain.Goal) constants.ExecutionState {
	c.initialized = false
	c.command = goal.Command
	c.startTime = c.clk.Now()

	if c.command == CommandSuccess || c.command == CommandFailOnRun {
		c.initialized = c.command == CommandSuccess
		c.logger.Debug().Str("command", c.command).Msg("conformance behavior initialized")
		return constants.StateRunning
	}

	c.logger.Debug().Str("command", c.command).Msg("conformance behavior rejected command")
	return constants.StateFailed
}

// Step simulates getting the robot state and sending a control output,
// succeeding once the fixed motion duration has elapsed.
func (c *Conformance) Step(_ context.Context) constants.ExecutionState {
	if !c.initialized {
		return constants.StateFailed
	}

	if c.clk.Now().Sub(c.startTime) >= c.motionDuration {
		// Movement was completed.
		return constants.StateSucceeded
	}
	return constants.StateRunning
}

// OnCancel stops the simulated motion.
func (c *Conformance) OnCancel(_ context.Context) error {
	c.logger.Debug().Str("command", c.command).Msg("conformance behavior canceled")
	c.initialized = false
	return nil
}

// Ensure Conformance implements Behavior.
var _ Behavior = (*Conformance)(nil)
