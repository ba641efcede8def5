package config

import (
	"github.com/spf13/viper"

	"github.com/navkit/navkit/internal/constants"
)

// DefaultConfig returns a new Config with the built-in default values.
// These defaults are the base layer that config files, environment
// variables, and CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			CyclePeriod:    constants.DefaultCyclePeriod,
			CancelGrace:    constants.DefaultCancelGrace,
			ServerWait:     constants.DefaultServerWaitTimeout,
			ResultWait:     constants.DefaultResultTimeout,
			MotionDuration: constants.DefaultMotionDuration,
		},
		Planning: PlanningConfig{
			Tolerance: constants.DefaultEndpointTolerance,
			Trials:    constants.DefaultRandomTrials,
			FailRatio: constants.DefaultAcceptableFailRatio,
			TestGrid:  "open_space",
		},
		Log: LogConfig{
			Level: "info",
			File:  true,
		},
	}
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from DefaultConfig().
// IMPORTANT: Keys must match the YAML tag names exactly.
func setDefaults(v *viper.Viper) {
	// Timing defaults
	v.SetDefault("timing.cycle_period", constants.DefaultCyclePeriod.String())
	v.SetDefault("timing.cancel_grace", constants.DefaultCancelGrace.String())
	v.SetDefault("timing.server_wait", constants.DefaultServerWaitTimeout.String())
	v.SetDefault("timing.result_wait", constants.DefaultResultTimeout.String())
	v.SetDefault("timing.motion_duration", constants.DefaultMotionDuration.String())

	// Planning defaults
	v.SetDefault("planning.tolerance", constants.DefaultEndpointTolerance)
	v.SetDefault("planning.trials", constants.DefaultRandomTrials)
	v.SetDefault("planning.fail_ratio", constants.DefaultAcceptableFailRatio)
	v.SetDefault("planning.map_file", "")
	v.SetDefault("planning.test_grid", "open_space")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", true)
}

// applyOverrides copies non-zero values from overrides onto cfg. Zero
// values are ignored so partial flag overrides work.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Timing.CyclePeriod > 0 {
		cfg.Timing.CyclePeriod = overrides.Timing.CyclePeriod
	}
	if overrides.Timing.CancelGrace > 0 {
		cfg.Timing.CancelGrace = overrides.Timing.CancelGrace
	}
	if overrides.Timing.ServerWait > 0 {
		cfg.Timing.ServerWait = overrides.Timing.ServerWait
	}
	if overrides.Timing.ResultWait > 0 {
		cfg.Timing.ResultWait = overrides.Timing.ResultWait
	}
	if overrides.Timing.MotionDuration > 0 {
		cfg.Timing.MotionDuration = overrides.Timing.MotionDuration
	}
	if overrides.Planning.Tolerance > 0 {
		cfg.Planning.Tolerance = overrides.Planning.Tolerance
	}
	if overrides.Planning.Trials > 0 {
		cfg.Planning.Trials = overrides.Planning.Trials
	}
	if overrides.Planning.FailRatio > 0 {
		cfg.Planning.FailRatio = overrides.Planning.FailRatio
	}
	if overrides.Planning.MapFile != "" {
		cfg.Planning.MapFile = overrides.Planning.MapFile
	}
	if overrides.Planning.TestGrid != "" {
		cfg.Planning.TestGrid = overrides.Planning.TestGrid
	}
	if overrides.Log.Level != "" {
		cfg.Log.Level = overrides.Log.Level
	}
}
