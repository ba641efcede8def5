package cli

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/navkit/navkit/internal/action"
	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/config"
	"github.com/navkit/navkit/internal/costmap"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
	"github.com/navkit/navkit/internal/harness"
	"github.com/navkit/navkit/internal/supervisor"
)

// AddPlanCommand adds the plan command group to the root command.
func AddPlanCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Validate path-planning requests against a costmap",
	}
	cmd.AddCommand(newPlanCheckCmd(flags))
	cmd.AddCommand(newPlanRandomCmd(flags))
	root.AddCommand(cmd)
}

// newPlanCheckCmd creates the plan check subcommand: one full
// submit → plan → validate trial between explicit start and goal
// positions.
func newPlanCheckCmd(flags *GlobalFlags) *cobra.Command {
	var (
		startArg string
		goalArg  string
		mapFile  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single planning trial and validate the returned path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			cfg, err := config.LoadWithOverrides(&config.Config{
				Planning: config.PlanningConfig{MapFile: mapFile},
			})
			if err != nil {
				return err
			}

			start, err := parsePoint(startArg)
			if err != nil {
				return err
			}
			goal, err := parsePoint(goalArg)
			if err != nil {
				return err
			}

			p, cleanup, err := newPlannerStack(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			trialErr := p.PlanAndValidate(cmd.Context(), start, goal)
			if err := renderCheckResult(cmd.OutOrStdout(), flags.Output, start, goal, trialErr); err != nil {
				return err
			}
			return trialErr
		},
	}

	cmd.Flags().StringVar(&startArg, "start", "", `start position as "x,y"`)
	cmd.Flags().StringVar(&goalArg, "goal", "", `goal position as "x,y"`)
	cmd.Flags().StringVar(&mapFile, "map", "", "YAML costmap file (default: built-in test grid)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

// newPlanRandomCmd creates the plan random subcommand: a randomized
// batch of planning trials over uniformly random free cells.
func newPlanRandomCmd(flags *GlobalFlags) *cobra.Command {
	var (
		trials    int
		failRatio float64
		mapFile   string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Run randomized batch planning trials with a fail-ratio verdict",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			cfg, err := config.LoadWithOverrides(&config.Config{
				Planning: config.PlanningConfig{
					Trials:    trials,
					FailRatio: failRatio,
					MapFile:   mapFile,
				},
			})
			if err != nil {
				return err
			}

			p, cleanup, err := newPlannerStack(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			report, runErr := p.RandomTrials(cmd.Context(), cfg.Planning.Trials, cfg.Planning.FailRatio)
			if err := renderTrialReport(cmd.OutOrStdout(), flags.Output, report, cfg.Planning.FailRatio, runErr); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 0, "number of randomized trials (default from config)")
	cmd.Flags().Float64Var(&failRatio, "fail-ratio", 0, "acceptable failure ratio (default from config)")
	cmd.Flags().StringVar(&mapFile, "map", "", "YAML costmap file (default: built-in test grid)")

	return cmd
}

// newPlannerStack builds the planning harness over an in-process
// server running the straight-line planner, with the configured
// costmap installed.
func newPlannerStack(cfg *config.Config, logger zerolog.Logger) (*harness.Planner, func(), error) {
	grid, err := loadGrid(cfg)
	if err != nil {
		return nil, nil, err
	}

	poses := &harness.PoseStore{}
	planner := behavior.NewLinePlanner(poses, logger, grid.Resolution())

	sup := supervisor.New(planner, supervisor.Config{
		CyclePeriod: cfg.Timing.CyclePeriod,
		CancelGrace: cfg.Timing.CancelGrace,
	}, logger)
	srv := action.NewServer(sup, logger)
	srv.Start()

	p := harness.NewPlanner(srv, poses, logger, harness.Timeouts{
		ServerWait: cfg.Timing.ServerWait,
		Result:     cfg.Timing.ResultWait,
	}, harness.WithTolerance(cfg.Planning.Tolerance))
	p.SetCostmap(grid)

	return p, srv.Stop, nil
}

// loadGrid resolves the costmap: an explicit map file wins, otherwise
// the configured built-in test grid is used.
func loadGrid(cfg *config.Config) (*costmap.Grid, error) {
	if cfg.Planning.MapFile != "" {
		return costmap.LoadFile(cfg.Planning.MapFile)
	}
	return costmap.NewTestGrid(costmap.TestGrid(cfg.Planning.TestGrid))
}

// parsePoint parses an "x,y" coordinate pair.
func parsePoint(s string) (domain.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Point{}, navkiterrors.Wrapf(navkiterrors.ErrInvalidArgument,
			"position %q must be \"x,y\"", s)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Point{}, navkiterrors.Wrapf(navkiterrors.ErrInvalidArgument,
			"position %q: bad x coordinate", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Point{}, navkiterrors.Wrapf(navkiterrors.ErrInvalidArgument,
			"position %q: bad y coordinate", s)
	}
	return domain.Point{X: x, Y: y}, nil
}
