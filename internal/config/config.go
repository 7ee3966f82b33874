package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "KEYMAZE_"

// Config holds solver settings (in-memory representation).
// Flags in main override whatever Load produced.
type Config struct {
	Strategy    string `json:"strategy"`     // memo | dijkstra | explore
	Workers     int    `json:"workers"`      // mazes solved concurrently
	Prune       bool   `json:"prune"`        // fill dead ends before searching
	Strict      bool   `json:"strict"`       // fail on keys unreachable from the start
	MaxSteps    int    `json:"max_steps"`    // walk length limit for explore (0 = none)
	ShowRoute   bool   `json:"show_route"`   // print key order next to the answer
	Verbose     bool   `json:"verbose"`      // debug search traces
	HistoryPath string `json:"history_path"` // SQLite run history; empty = disabled
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Strategy: "memo",
		Workers:  4,
	}
}

// Load returns defaults overridden by KEYMAZE_* environment variables. Values
// from envFile (if it exists) fill variables not already set in the
// environment. Malformed values are reported, not ignored.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	m := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		m[strings.ToLower(strings.TrimPrefix(k, EnvPrefix))] = v
	}
	return FromMap(m)
}

// FromMap applies lower-case keys (strategy, workers, ...) over defaults.
func FromMap(m map[string]string) (*Config, error) {
	cfg := Default()
	var err error

	if v, ok := m["strategy"]; ok {
		cfg.Strategy = strings.TrimSpace(v)
	}
	if v, ok := m["workers"]; ok {
		if cfg.Workers, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("workers: %w", err)
		}
	}
	if v, ok := m["prune"]; ok {
		if cfg.Prune, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("prune: %w", err)
		}
	}
	if v, ok := m["strict"]; ok {
		if cfg.Strict, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("strict: %w", err)
		}
	}
	if v, ok := m["max_steps"]; ok {
		if cfg.MaxSteps, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("max_steps: %w", err)
		}
	}
	if v, ok := m["route"]; ok {
		if cfg.ShowRoute, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("route: %w", err)
		}
	}
	if v, ok := m["verbose"]; ok {
		if cfg.Verbose, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("verbose: %w", err)
		}
	}
	if v, ok := m["history"]; ok {
		cfg.HistoryPath = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges. Strategy names are checked by the engine.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	return nil
}
