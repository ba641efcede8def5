package behavior

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// PoseSource exposes the most recently published robot pose. The
// planning harness publishes the start pose before each plan request;
// the planner reads it here.
type PoseSource interface {
	Current() (domain.Pose, bool)
}

// LinePlanner is a trivial planner behavior standing in for a real
// path planner: it connects the current robot pose to the goal's
// target with a straight line sampled at fixed intervals. It exists so
// the planning harness has a complete submit → plan → validate cycle
// to exercise.
type LinePlanner struct {
	poses  PoseSource
	logger zerolog.Logger

	// stepSize is the spacing between interpolated path points in world
	// units.
	stepSize float64

	path *domain.Path
	done bool
}

// NewLinePlanner creates a planner reading start poses from the given
// source. A non-positive step size defaults to one world unit.
func NewLinePlanner(poses PoseSource, logger zerolog.Logger, stepSize float64) *LinePlanner {
	if stepSize <= 0 {
		stepSize = 1.0
	}
	return &LinePlanner{
		poses:    poses,
		logger:   logger.With().Str("behavior", "line_planner").Logger(),
		stepSize: stepSize,
	}
}

// Name implements Behavior.
func (p *LinePlanner) Name() string { return "line_planner" }

// Initialize computes the path. Planning fails when the goal carries no
// target or no pose has been published yet.
func (p *LinePlanner) Initialize(_ context.Context, goal *domain.Goal) constants.ExecutionState {
	p.path = nil
	p.done = false

	if goal.Target == nil {
		p.logger.Warn().Msg("plan request without a target pose")
		return constants.StateFailed
	}
	start, ok := p.poses.Current()
	if !ok {
		p.logger.Warn().Msg("no robot pose published")
		return constants.StateFailed
	}

	p.path = interpolate(start.Position, goal.Target.Position, p.stepSize)
	return constants.StateRunning
}

// Step completes on the first tick after planning; the work itself is
// done in Initialize.
func (p *LinePlanner) Step(_ context.Context) constants.ExecutionState {
	if p.path == nil {
		return constants.StateFailed
	}
	p.done = true
	return constants.StateSucceeded
}

// OnCancel implements Behavior.
func (p *LinePlanner) OnCancel(_ context.Context) error {
	p.path = nil
	return nil
}

// ResultPayload implements ResultProvider.
func (p *LinePlanner) ResultPayload() *domain.Path {
	return p.path
}

// interpolate samples the segment from a to b every step units. Both
// endpoints are always included exactly.
func interpolate(a, b domain.Point, step float64) *domain.Path {
	dist := a.DistanceTo(b)
	n := int(math.Ceil(dist / step))

	points := make([]domain.Point, 0, n+1)
	points = append(points, a)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		points = append(points, domain.Point{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
		})
	}
	if dist > 0 {
		points = append(points, b)
	}
	return &domain.Path{Points: points}
}

var (
	_ Behavior       = (*LinePlanner)(nil)
	_ ResultProvider = (*LinePlanner)(nil)
)
