package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// LoggingConfig controls log output format and verbosity.
type LoggingConfig struct {
	// Env selects the output format: "dev" renders a human-readable
	// console writer, anything else emits JSON.
	Env string `json:"env"`
	// Level is the minimum level to emit, one of zerolog's level
	// names ("trace", "debug", "info", "warn", "error").
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Env == "" {
		c.Env = "production"
	}
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks that the level is one zerolog understands.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Level)); err != nil {
		return fmt.Errorf("unknown log level %q: %w", c.Level, err)
	}
	return nil
}
