// Package config loads and saves datemath's persisted settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when the config file is missing or a field is unset.
const (
	DefaultColor        = "auto"
	DefaultHistoryLimit = 500
)

// Config holds user-adjustable settings.
type Config struct {
	// Color controls styled output: "auto", "always", or "never".
	Color string `json:"color,omitempty"`
	// History disables evaluation history when false.
	History *bool `json:"history,omitempty"`
	// HistoryLimit caps the number of retained history entries.
	HistoryLimit int `json:"history_limit,omitempty"`
}

// HistoryEnabled reports whether evaluations should be recorded.
func (c *Config) HistoryEnabled() bool {
	return c.History == nil || *c.History
}

// EffectiveColor returns the color mode with the default applied.
func (c *Config) EffectiveColor() string {
	if c.Color == "" {
		return DefaultColor
	}
	return c.Color
}

// EffectiveHistoryLimit returns the history cap with the default applied.
func (c *Config) EffectiveHistoryLimit() int {
	if c.HistoryLimit <= 0 {
		return DefaultHistoryLimit
	}
	return c.HistoryLimit
}

// Load reads the config from path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to path atomically (temp file + rename).
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
