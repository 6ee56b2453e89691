package config

import (
	"fmt"
	"time"
)

// SolverConfig bounds the branch-and-bound search.
type SolverConfig struct {
	// TimeLimitSeconds is the solve budget; the best incumbent found
	// within it is accepted.
	TimeLimitSeconds int `json:"time_limit_seconds"`
	// Tolerance is the simplex pivot tolerance.
	Tolerance float64 `json:"tolerance"`
	// MaxNodes caps explored nodes, 0 means unlimited.
	MaxNodes int `json:"max_nodes"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.TimeLimitSeconds == 0 {
		c.TimeLimitSeconds = 10
	}
	if c.Tolerance == 0 {
		c.Tolerance = 1e-7
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	if c.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time_limit_seconds must be positive, got %d", c.TimeLimitSeconds)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %g", c.Tolerance)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes)
	}
	return nil
}

// TimeLimit returns the solve budget as a duration.
func (c SolverConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds) * time.Second
}
