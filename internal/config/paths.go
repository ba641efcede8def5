package config

import (
	"os"
	"path/filepath"

	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// GlobalConfigDir returns the path to the global navkit configuration
// directory, typically ~/.navkit on Unix systems.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", navkiterrors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.NavkitHome), nil
}

// ProjectConfigDir returns the relative path to the project
// configuration directory, always .navkit relative to the working
// directory.
func ProjectConfigDir() string {
	return constants.NavkitHome
}

// GlobalConfigPath returns the full path to the global configuration
// file, typically ~/.navkit/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the relative path to the project
// configuration file, always .navkit/config.yaml.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), "config.yaml")
}
