package config

import (
	"time"

	"github.com/navkit/navkit/internal/costmap"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent
// values. It returns an error describing the first validation failure
// found.
//
// Validation rules:
//   - all timing durations must be positive
//   - cycle period must not exceed one second
//   - planning tolerance and fail ratio must not be negative
//   - fail ratio must not exceed 1
//   - trials must be positive
//   - test grid must name a built-in grid when no map file is set
func Validate(cfg *Config) error {
	if cfg == nil {
		return navkiterrors.ErrConfigNil
	}

	if err := validateTimingConfig(&cfg.Timing); err != nil {
		return err
	}
	return validatePlanningConfig(&cfg.Planning)
}

func validateTimingConfig(cfg *TimingConfig) error {
	if cfg.CyclePeriod <= 0 || cfg.CyclePeriod > time.Second {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidTiming,
			"timing.cycle_period must be within (0, 1s], got %s", cfg.CyclePeriod)
	}
	if cfg.CancelGrace <= 0 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidTiming,
			"timing.cancel_grace must be positive, got %s", cfg.CancelGrace)
	}
	if cfg.ServerWait <= 0 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidTiming,
			"timing.server_wait must be positive, got %s", cfg.ServerWait)
	}
	if cfg.ResultWait <= 0 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidTiming,
			"timing.result_wait must be positive, got %s", cfg.ResultWait)
	}
	if cfg.MotionDuration <= 0 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidTiming,
			"timing.motion_duration must be positive, got %s", cfg.MotionDuration)
	}
	return nil
}

func validatePlanningConfig(cfg *PlanningConfig) error {
	if cfg.Tolerance < 0 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidPlanning,
			"planning.tolerance must not be negative, got %g", cfg.Tolerance)
	}
	if cfg.Trials < 1 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidPlanning,
			"planning.trials must be at least 1, got %d", cfg.Trials)
	}
	if cfg.FailRatio < 0 || cfg.FailRatio > 1 {
		return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidPlanning,
			"planning.fail_ratio must be within [0, 1], got %g", cfg.FailRatio)
	}
	if cfg.MapFile == "" {
		if _, err := costmap.NewTestGrid(costmap.TestGrid(cfg.TestGrid)); err != nil {
			return navkiterrors.Wrapf(navkiterrors.ErrConfigInvalidPlanning,
				"planning.test_grid %q is not a built-in grid", cfg.TestGrid)
		}
	}
	return nil
}
