// Package config holds the explicit configuration bundle for a run.
// Every tunable lives here and is passed into components; nothing
// reads ambient globals.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lazypower/rapport/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Engine engine.Config `yaml:"engine"`
	Log    LogConfig     `yaml:"log"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// File receives JSON logs in addition to stderr when set.
	File  string `yaml:"file"`
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns a Config with standard settings.
func Default() Config {
	return Config{
		Engine: engine.Default(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file at
// the default location is fine; an explicitly requested file that
// doesn't exist is an error, as is any value the engine rejects.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Engine.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rapport.yaml"
	}
	return filepath.Join(home, ".config", "rapport", "config.yaml")
}
