package harness

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/action"
	"github.com/navkit/navkit/internal/costmap"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// PoseStore is the simulated robot pose feed: the harness publishes
// the robot's position at goal-submission time and the planner under
// test reads the latest value.
type PoseStore struct {
	mu   sync.Mutex
	pose domain.Pose
	set  bool
}

// Publish records the robot's current pose.
func (s *PoseStore) Publish(p domain.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pose = p
	s.set = true
}

// Current returns the latest published pose, reporting whether one has
// been published at all.
func (s *PoseStore) Current() (domain.Pose, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pose, s.set
}

// TrialReport summarizes a randomized batch run.
type TrialReport struct {
	Trials   int
	Failures int
	Elapsed  time.Duration
}

// FailureRatio returns failures over trials, zero for an empty batch.
func (r TrialReport) FailureRatio() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Failures) / float64(r.Trials)
}

// Planner is the planning-specific harness: it publishes the robot
// pose, submits target-pose goals, and validates returned paths against
// a costmap snapshot.
type Planner struct {
	*Harness
	logger zerolog.Logger

	poses     *PoseStore
	grid      *costmap.Grid
	tolerance float64
	rng       *rand.Rand
}

// PlannerOption configures a planning harness.
type PlannerOption func(*Planner)

// WithTolerance sets the endpoint comparison tolerance. Zero means
// exact equality.
func WithTolerance(tol float64) PlannerOption {
	return func(p *Planner) {
		p.tolerance = tol
	}
}

// WithRand sets the random source for batch trials, fixed in tests for
// reproducibility.
func WithRand(rng *rand.Rand) PlannerOption {
	return func(p *Planner) {
		p.rng = rng
	}
}

// NewPlanner creates a planning harness. The costmap starts unset; call
// SetCostmap or UseTestGrid before validating.
func NewPlanner(client action.Client, poses *PoseStore, logger zerolog.Logger, timeouts Timeouts, opts ...PlannerOption) *Planner {
	p := &Planner{
		Harness: New(client, logger, timeouts),
		logger:  logger.With().Str("component", "planner_harness").Logger(),
		poses:   poses,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetCostmap installs the grid paths are validated against.
func (p *Planner) SetCostmap(g *costmap.Grid) {
	p.grid = g
}

// UseTestGrid installs one of the built-in test grids.
func (p *Planner) UseTestGrid(kind costmap.TestGrid) error {
	g, err := costmap.NewTestGrid(kind)
	if err != nil {
		return err
	}
	p.grid = g
	return nil
}

// CostmapSnapshot returns an independent copy of the installed grid,
// or ErrCostmapNotSet when none is installed.
func (p *Planner) CostmapSnapshot() (*costmap.Grid, error) {
	if p.grid == nil {
		return nil, navkiterrors.ErrCostmapNotSet
	}
	return p.grid.Clone(), nil
}

// PlanAndValidate runs one full planning trial: publish the robot pose
// at start, submit the goal pose, await the path, and validate it.
func (p *Planner) PlanAndValidate(ctx context.Context, start, goal domain.Point) error {
	if p.grid == nil {
		return navkiterrors.Wrap(navkiterrors.ErrCostmapNotSet, "cannot validate")
	}

	// The pose feed must carry the start position before the planner
	// sees the request.
	p.poses.Publish(domain.Pose{Position: start})

	handle, err := p.SendTarget(ctx, domain.Pose{Position: goal})
	if err != nil {
		return err
	}

	path, err := p.GetPath(ctx, handle)
	if err != nil {
		return err
	}
	return p.Validate(path, start, goal)
}

// Validate checks a returned path: it must be non-empty, every point's
// rounded grid cell must be free, and its endpoints must match the
// requested start and goal within the configured tolerance.
func (p *Planner) Validate(path *domain.Path, start, goal domain.Point) error {
	if p.grid == nil {
		return navkiterrors.Wrap(navkiterrors.ErrCostmapNotSet, "cannot validate")
	}
	if path.Empty() {
		return navkiterrors.ErrPathEmpty
	}

	for i, pt := range path.Points {
		if !p.grid.IsFree(pt.X, pt.Y) {
			return navkiterrors.Wrapf(navkiterrors.ErrPathCollision,
				"point %d at (%.2f, %.2f)", i, pt.X, pt.Y)
		}
	}

	if !path.Start().WithinTolerance(start, p.tolerance) {
		return navkiterrors.Wrapf(navkiterrors.ErrPathEndpointDeviation,
			"path starts at (%.2f, %.2f), requested (%.2f, %.2f)",
			path.Start().X, path.Start().Y, start.X, start.Y)
	}
	if !path.End().WithinTolerance(goal, p.tolerance) {
		return navkiterrors.Wrapf(navkiterrors.ErrPathEndpointDeviation,
			"path ends at (%.2f, %.2f), requested (%.2f, %.2f)",
			path.End().X, path.End().Y, goal.X, goal.Y)
	}
	return nil
}

// RandomTrials draws uniformly random free start/goal cells and runs
// the full submit → validate cycle the given number of times. The
// batch fails overall iff the observed failure ratio exceeds the
// acceptable ratio.
func (p *Planner) RandomTrials(ctx context.Context, trials int, acceptableFailRatio float64) (TrialReport, error) {
	report := TrialReport{Trials: trials}
	if p.grid == nil {
		return report, navkiterrors.Wrap(navkiterrors.ErrCostmapNotSet, "cannot run trials")
	}
	if trials <= 0 {
		return report, navkiterrors.Wrapf(navkiterrors.ErrInvalidArgument, "trials %d", trials)
	}

	begin := time.Now()
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start, err := p.grid.RandomFreeCell(p.rng)
		if err != nil {
			return report, err
		}
		goal, err := p.grid.RandomFreeCell(p.rng)
		if err != nil {
			return report, err
		}

		if err := p.PlanAndValidate(ctx, start, goal); err != nil {
			p.logger.Warn().Err(err).
				Int("trial", i+1).
				Float64("start_x", start.X).Float64("start_y", start.Y).
				Float64("goal_x", goal.X).Float64("goal_y", goal.Y).
				Msg("trial failed")
			report.Failures++
		}
	}
	report.Elapsed = time.Since(begin)

	p.logger.Info().
		Int("trials", report.Trials).
		Int("failures", report.Failures).
		Dur("elapsed", report.Elapsed).
		Msg("randomized batch finished")

	if report.FailureRatio() > acceptableFailRatio {
		return report, navkiterrors.Wrapf(navkiterrors.ErrBatchFailed,
			"failure ratio %.3f exceeds %.3f", report.FailureRatio(), acceptableFailRatio)
	}
	return report, nil
}
