// Package config loads the scheduling run configuration from YAML or
// JSON files with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/rosterlp/core/metrics"
	"github.com/kilianp07/rosterlp/core/roster"
)

// Config is the full configuration of one scheduling run.
type Config struct {
	Roster  roster.Params  `json:"roster"`
	Solver  SolverConfig   `json:"solver"`
	Metrics metrics.Config `json:"metrics"`
	Logging LoggingConfig  `json:"logging"`
}

// Load reads the configuration file at path. Environment variables
// prefixed with R_ override file values, with __ separating key levels
// (for example R_SOLVER__TIME_LIMIT_SECONDS=30).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("R_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "r_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Roster.SetDefaults()
	// An explicit fairness weight of zero is a valid choice (pure
	// coverage), so the default applies only when the key is absent.
	if !k.Exists("roster.fairness_weight") {
		cfg.Roster.FairnessWeight = roster.DefaultFairnessWeight
	}
	cfg.Solver.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Roster.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
