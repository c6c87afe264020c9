// Package config loads the winscope YAML configuration with strict key
// checking, defaults, and validation.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the effective daemon configuration.
type Config struct {
	// Display overrides the DISPLAY environment variable for the X11
	// connection. Empty uses the environment.
	Display string `yaml:"display"`
	// Xauthority overrides XAUTHORITY. Empty uses the environment.
	Xauthority string `yaml:"xauthority"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// PollIntervalMS is the reconcile interval for the window tracker.
	PollIntervalMS int `yaml:"poll_interval_ms"`
	// PickerCommand is the dialog binary used for message boxes and file
	// pickers.
	PickerCommand string `yaml:"picker_command"`
	// RecentLimit bounds the recently-opened list.
	RecentLimit int `yaml:"recent_limit"`
	// WorkspaceDir overrides where workspace definitions are stored.
	WorkspaceDir string `yaml:"workspace_dir"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		PollIntervalMS: 2000,
		PickerCommand:  "zenity",
		RecentLimit:    50,
	}
}

// PollInterval returns the reconcile interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Validate checks value ranges. Called by Load; callers constructing a
// Config by hand should call it themselves.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: invalid level %q (debug, info, warn, error)", c.LogLevel)
	}
	if c.PollIntervalMS < 100 {
		return fmt.Errorf("poll_interval_ms: %d is below the 100ms minimum", c.PollIntervalMS)
	}
	if c.PickerCommand == "" {
		return fmt.Errorf("picker_command: must not be empty")
	}
	if c.RecentLimit < 1 {
		return fmt.Errorf("recent_limit: %d must be at least 1", c.RecentLimit)
	}
	return nil
}

// DefaultConfigPath returns ~/.config/winscope/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "winscope", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path. A missing
// file yields the defaults; unknown keys are an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("%s: failed to read: %w", path, err)
	}

	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
