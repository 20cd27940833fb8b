// Package config loads the session configuration from the user's data
// directory. A missing config file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable session settings.
type Config struct {
	// Prompt is the string displayed before the input area.
	Prompt string `yaml:"prompt"`

	// LogLevel controls file logging verbosity: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`

	// HistoryLimit caps how many past lines are loaded into the editor.
	HistoryLimit int `yaml:"history_limit"`

	// Banner disables the welcome screen when false.
	Banner bool `yaml:"banner"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Prompt:       "strata> ",
		LogLevel:     "info",
		HistoryLimit: 500,
		Banner:       true,
	}
}

// Load reads the config file at path, layering it over the defaults. A
// missing file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}
