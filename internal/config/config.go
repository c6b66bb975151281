// SPDX-License-Identifier: MIT

// Package config holds the lvmatch command-line configuration and its
// loader (defaults → YAML file → LVMATCH_* environment).
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Objective values.
const (
	ObjectiveMax = "max"
	ObjectiveMin = "min"
)

// Output format values.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the root configuration.
type Config struct {
	Log       LogConfig     `koanf:"log"`
	Output    OutputConfig  `koanf:"output"`
	Objective string        `koanf:"objective"` // max, min
	Metrics   MetricsConfig `koanf:"metrics"`
}

// LogConfig configures the zap logger and its optional rotating file.
type LogConfig struct {
	Level      string `koanf:"level"`  // debug, info, warn, error
	Format     string `koanf:"format"` // console, json
	File       string `koanf:"file"`   // empty: stderr only
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"` // days
}

// OutputConfig selects the report encoding.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, yaml
}

// MetricsConfig toggles the Prometheus text dump after a solve.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	File    string `koanf:"file"` // empty: stderr
}

// Minimize reports whether the objective asks for a minimum-cost assignment.
func (c *Config) Minimize() bool { return c.Objective == ObjectiveMin }

// Validate normalizes case and rejects unknown enum values and negative
// rotation limits. All problems are reported together.
func (c *Config) Validate() error {
	var errs []string

	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	if c.Log.Format != "console" && c.Log.Format != "json" {
		errs = append(errs, fmt.Sprintf("log.format must be one of: console, json, got %s", c.Log.Format))
	}
	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAge < 0 {
		errs = append(errs, "log.max_size, log.max_backups and log.max_age must be non-negative")
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Sprintf("output.format must be one of: text, json, yaml, got %s", c.Output.Format))
	}

	c.Objective = strings.ToLower(c.Objective)
	if c.Objective != ObjectiveMax && c.Objective != ObjectiveMin {
		errs = append(errs, fmt.Sprintf("objective must be one of: max, min, got %s", c.Objective))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}

	return nil
}
