// Package paths resolves the per-user locations of datemath's config and
// history files. DATEMATH_DIR overrides the base directory, which keeps
// tests and scripts hermetic.
package paths

import (
	"os"
	"path/filepath"
)

const (
	envBaseDir  = "DATEMATH_DIR"
	appDir      = "datemath"
	configName  = "config.json"
	historyName = "history.db"
)

// BaseDir returns the directory holding datemath's files, creating it if
// needed.
func BaseDir() (string, error) {
	if dir := os.Getenv(envBaseDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(cfg, appDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigFile returns the path of the config file.
func ConfigFile() (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

// HistoryFile returns the path of the history database.
func HistoryFile() (string, error) {
	dir, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, historyName), nil
}
