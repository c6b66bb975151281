// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LVMATCH_"

// Loader assembles a Config from layered sources.
type Loader struct {
	k         *koanf.Koanf
	file      string
	envPrefix string
	overrides map[string]any
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFile sets the YAML file to read. A missing file is an error; an
// empty path skips the file layer.
func WithFile(path string) LoaderOption {
	return func(l *Loader) {
		l.file = path
	}
}

// WithEnvPrefix replaces the default LVMATCH_ prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithOverrides applies dotted keys on top of every other layer. The CLI uses
// it for flags the user set explicitly.
func WithOverrides(kv map[string]any) LoaderOption {
	return func(l *Loader) {
		for k, v := range kv {
			l.overrides[k] = v
		}
	}
}

// NewLoader creates a loader with the default env prefix and no file.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: envPrefix,
		overrides: map[string]any{},
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load merges, in increasing priority:
//  1. defaults;
//  2. the YAML file, if any;
//  3. environment variables;
//  4. explicit overrides.
//
// The result is validated before it is returned.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if l.file != "" {
		if _, err := os.Stat(l.file); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := l.k.Load(file.Provider(l.file), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", l.file, err)
		}
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	if len(l.overrides) > 0 {
		if err := l.k.Load(confmap.Provider(l.overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("config: load overrides: %w", err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Defaults returns the lowest-priority layer.
func Defaults() map[string]any {
	return map[string]any{
		"log.level":       "info",
		"log.format":      "console",
		"log.file":        "",
		"log.max_size":    10,
		"log.max_backups": 3,
		"log.max_age":     7,

		"output.format": FormatText,
		"objective":     ObjectiveMax,

		"metrics.enabled": false,
		"metrics.file":    "",
	}
}

// loadEnv maps LVMATCH_LOG_MAX_SIZE to log.max_size and so on. Keys whose
// names contain underscores are looked up in envKeyMappings first.
func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(envKey string, value string) (string, interface{}) {
		key := strings.ToLower(strings.TrimPrefix(envKey, l.envPrefix))
		if mapped, ok := envKeyMappings[key]; ok {
			return mapped, value
		}

		return strings.ReplaceAll(key, "_", "."), value
	}), nil)
}

var envKeyMappings = map[string]string{
	"log_max_size":    "log.max_size",
	"log_max_backups": "log.max_backups",
	"log_max_age":     "log.max_age",
	"output_format":   "output.format",
}
