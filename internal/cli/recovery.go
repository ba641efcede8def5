package cli

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/navkit/navkit/internal/action"
	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/clock"
	"github.com/navkit/navkit/internal/config"
	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
	"github.com/navkit/navkit/internal/harness"
	"github.com/navkit/navkit/internal/supervisor"
)

// AddRecoveryCommand adds the recovery command group to the root
// command.
func AddRecoveryCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Run recovery behaviors behind the goal execution protocol",
	}
	cmd.AddCommand(newRecoveryRunCmd(flags))
	root.AddCommand(cmd)
}

// newRecoveryRunCmd creates the recovery run subcommand. By default it
// runs the full conformance suite in order against one shared behavior
// server; --scenario selects a single case and --isolated gives every
// scenario its own server and runs them concurrently.
func newRecoveryRunCmd(flags *GlobalFlags) *cobra.Command {
	var (
		scenarioName   string
		command        string
		isolated       bool
		motionDuration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run protocol conformance scenarios against a behavior server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := GetLogger()

			cfg, err := config.LoadWithOverrides(&config.Config{
				Timing: config.TimingConfig{MotionDuration: motionDuration},
			})
			if err != nil {
				return err
			}

			if command != "" {
				return runSingleCommand(cmd, flags, cfg, logger, command)
			}

			scenarios := harness.ConformanceScenarios()
			if scenarioName != "" {
				sc, err := harness.ScenarioByName(scenarioName)
				if err != nil {
					return err
				}
				scenarios = []harness.Scenario{sc}
			}

			var results []harness.ScenarioResult
			var runErr error
			if isolated {
				results, runErr = runScenariosIsolated(cmd, cfg, logger, scenarios)
			} else {
				results, runErr = runScenariosShared(cmd, cfg, logger, scenarios)
			}
			if results != nil {
				if err := renderScenarioReport(cmd.OutOrStdout(), flags.Output, results); err != nil {
					return err
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&scenarioName, "scenario", "", "run a single named scenario")
	cmd.Flags().StringVar(&command, "command", "", `run one ad-hoc command goal (e.g. "spin:1.57")`)
	cmd.Flags().BoolVar(&isolated, "isolated", false, "run each scenario against its own server, concurrently")
	cmd.Flags().DurationVar(&motionDuration, "motion-duration", 0, "override the simulated motion duration")
	cmd.MarkFlagsMutuallyExclusive("scenario", "command")

	return cmd
}

// newRecoveryStack builds a behavior server with the full recovery set
// registered: spin, backup, wait, and the conformance behavior as the
// fallback for unprefixed commands.
func newRecoveryStack(cfg *config.Config, logger zerolog.Logger) (*action.Server, *harness.Harness) {
	clk := clock.RealClock{}
	registry := behavior.NewRegistry(logger)
	registry.Register(behavior.NewSpin(clk, logger))
	registry.Register(behavior.NewBackUp(clk, logger))
	registry.Register(behavior.NewWait(clk, logger))
	registry.SetFallback(behavior.NewConformance(clk, logger, cfg.Timing.MotionDuration))

	sup := supervisor.New(registry, supervisor.Config{
		CyclePeriod: cfg.Timing.CyclePeriod,
		CancelGrace: cfg.Timing.CancelGrace,
	}, logger)
	srv := action.NewServer(sup, logger)
	srv.Start()

	h := harness.New(srv, logger, harness.Timeouts{
		ServerWait: cfg.Timing.ServerWait,
		Result:     cfg.Timing.ResultWait,
	})
	return srv, h
}

// runScenariosShared runs the scenarios strictly in order against one
// shared server, which is what exposes residue leaking between
// consecutive instances.
func runScenariosShared(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger, scenarios []harness.Scenario) ([]harness.ScenarioResult, error) {
	srv, h := newRecoveryStack(cfg, logger)
	defer srv.Stop()

	return h.RunAll(cmd.Context(), scenarios)
}

// runScenariosIsolated gives every scenario its own server and runs
// them concurrently. Isolation trades the residue check for speed.
func runScenariosIsolated(cmd *cobra.Command, cfg *config.Config, logger zerolog.Logger, scenarios []harness.Scenario) ([]harness.ScenarioResult, error) {
	results := make([]harness.ScenarioResult, len(scenarios))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, sc := range scenarios {
		g.Go(func() error {
			srv, h := newRecoveryStack(cfg, logger)
			defer srv.Stop()

			results[i] = h.RunScenario(ctx, sc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	failed := 0
	for _, res := range results {
		if !res.Passed() {
			failed++
		}
	}
	if failed > 0 {
		return results, navkiterrors.Wrapf(navkiterrors.ErrScenarioFailed,
			"%d of %d scenarios", failed, len(scenarios))
	}
	return results, nil
}

// runSingleCommand submits one ad-hoc command goal and reports its
// outcome.
func runSingleCommand(cmd *cobra.Command, flags *GlobalFlags, cfg *config.Config, logger zerolog.Logger, command string) error {
	srv, h := newRecoveryStack(cfg, logger)
	defer srv.Stop()

	ctx := cmd.Context()
	handle, err := h.SendCommand(ctx, command)
	if err != nil {
		return err
	}
	outcome := h.GetOutcome(ctx, handle)

	if err := renderCommandOutcome(cmd.OutOrStdout(), flags.Output, command, outcome); err != nil {
		return err
	}
	if outcome != constants.OutcomeSucceeded {
		return navkiterrors.Wrapf(navkiterrors.ErrExecutionFailed, "command %q", command)
	}
	return nil
}
