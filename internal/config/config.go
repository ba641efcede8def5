// Package config provides configuration management for navkit with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest
// precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (NAVKIT_* prefix)
//  3. Project config (.navkit/config.yaml)
//  4. Global config (~/.navkit/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants,
// internal/errors, and internal/costmap (for grid-name validation),
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for navkit.
type Config struct {
	// Timing contains the execution timing contracts: scheduler period,
	// cancellation grace, and the harness wait budgets.
	Timing TimingConfig `yaml:"timing" mapstructure:"timing"`

	// Planning contains settings for the path-planning harness.
	Planning PlanningConfig `yaml:"planning" mapstructure:"planning"`

	// Log contains logging settings.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// TimingConfig contains the timing contracts for supervisor and
// harness.
type TimingConfig struct {
	// CyclePeriod is the scheduler tick period while a behavior runs.
	// Default: 100ms
	CyclePeriod time.Duration `yaml:"cycle_period" mapstructure:"cycle_period"`

	// CancelGrace bounds behavior wind-down after a cancellation.
	// Default: 2s
	CancelGrace time.Duration `yaml:"cancel_grace" mapstructure:"cancel_grace"`

	// ServerWait bounds how long the harness waits for the action
	// server to come up. Default: 4s
	ServerWait time.Duration `yaml:"server_wait" mapstructure:"server_wait"`

	// ResultWait bounds how long the harness waits for a terminal
	// result. Default: 10s
	ResultWait time.Duration `yaml:"result_wait" mapstructure:"result_wait"`

	// MotionDuration is the simulated motion time of the conformance
	// behavior. Default: 5s
	MotionDuration time.Duration `yaml:"motion_duration" mapstructure:"motion_duration"`
}

// PlanningConfig contains settings for the planning harness.
type PlanningConfig struct {
	// Tolerance is the endpoint comparison tolerance in world units.
	// Zero means exact equality. Default: 0
	Tolerance float64 `yaml:"tolerance" mapstructure:"tolerance"`

	// Trials is the number of randomized batch trials. Default: 100
	Trials int `yaml:"trials" mapstructure:"trials"`

	// FailRatio is the acceptable failure ratio for a randomized batch.
	// Default: 0.1
	FailRatio float64 `yaml:"fail_ratio" mapstructure:"fail_ratio"`

	// MapFile is an optional YAML map file; when empty the built-in
	// test grid named by TestGrid is used.
	MapFile string `yaml:"map_file" mapstructure:"map_file"`

	// TestGrid names the built-in grid used when MapFile is empty.
	// Default: "open_space"
	TestGrid string `yaml:"test_grid" mapstructure:"test_grid"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// File enables the rotated log file under ~/.navkit/logs.
	// Default: true
	File bool `yaml:"file" mapstructure:"file"`
}
