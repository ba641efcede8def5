package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, constants.DefaultCyclePeriod, cfg.Timing.CyclePeriod)
	assert.Equal(t, constants.DefaultMotionDuration, cfg.Timing.MotionDuration)
	assert.Equal(t, constants.DefaultRandomTrials, cfg.Planning.Trials)
	assert.Equal(t, "open_space", cfg.Planning.TestGrid)
}

func TestLoadFromPaths_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFromPaths("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPaths_DurationStringsDecode(t *testing.T) {
	dir := t.TempDir()
	project := writeConfig(t, dir, "config.yaml", `
timing:
  cycle_period: 50ms
  motion_duration: 1s
`)

	cfg, err := LoadFromPaths(project, "")
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Timing.CyclePeriod)
	assert.Equal(t, time.Second, cfg.Timing.MotionDuration)
	// Untouched keys keep their defaults.
	assert.Equal(t, constants.DefaultCancelGrace, cfg.Timing.CancelGrace)
}

func TestLoadFromPaths_ProjectOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	global := writeConfig(t, dir, "global.yaml", `
timing:
  cycle_period: 200ms
planning:
  trials: 50
`)
	project := writeConfig(t, dir, "project.yaml", `
timing:
  cycle_period: 20ms
`)

	cfg, err := LoadFromPaths(project, global)
	require.NoError(t, err)
	assert.Equal(t, 20*time.Millisecond, cfg.Timing.CyclePeriod)
	// Global keys not shadowed by the project file survive the merge.
	assert.Equal(t, 50, cfg.Planning.Trials)
}

func TestLoadWithOverridesAppliesNonZeroValues(t *testing.T) {
	cfg, err := LoadWithOverrides(&Config{
		Planning: PlanningConfig{Trials: 7, TestGrid: "bounded"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Planning.Trials)
	assert.Equal(t, "bounded", cfg.Planning.TestGrid)
	assert.Equal(t, constants.DefaultCyclePeriod, cfg.Timing.CyclePeriod)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"nil config", nil, navkiterrors.ErrConfigNil},
		{
			"zero cycle period",
			func(c *Config) { c.Timing.CyclePeriod = 0 },
			navkiterrors.ErrConfigInvalidTiming,
		},
		{
			"cycle period too long",
			func(c *Config) { c.Timing.CyclePeriod = 2 * time.Second },
			navkiterrors.ErrConfigInvalidTiming,
		},
		{
			"negative cancel grace",
			func(c *Config) { c.Timing.CancelGrace = -time.Second },
			navkiterrors.ErrConfigInvalidTiming,
		},
		{
			"zero trials",
			func(c *Config) { c.Planning.Trials = 0 },
			navkiterrors.ErrConfigInvalidPlanning,
		},
		{
			"fail ratio above one",
			func(c *Config) { c.Planning.FailRatio = 1.5 },
			navkiterrors.ErrConfigInvalidPlanning,
		},
		{
			"negative tolerance",
			func(c *Config) { c.Planning.Tolerance = -0.1 },
			navkiterrors.ErrConfigInvalidPlanning,
		},
		{
			"unknown test grid",
			func(c *Config) { c.Planning.TestGrid = "mars_surface" },
			navkiterrors.ErrConfigInvalidPlanning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = DefaultConfig()
				tt.mutate(cfg)
			}
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_MapFileSkipsGridNameCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Planning.MapFile = "maps/warehouse.yaml"
	cfg.Planning.TestGrid = "anything"

	assert.NoError(t, Validate(cfg))
}
