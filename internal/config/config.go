// Package config loads configuration for the pastemyst demo binary.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the demo binary. Everything is optional: the
// zero value talks anonymously to the public API.
type Config struct {
	// BaseURL overrides the API root, mainly for self-hosted instances.
	BaseURL string `yaml:"base_url"`
	// Token authenticates requests. The PASTEMYST_TOKEN environment
	// variable takes precedence so tokens can stay out of files.
	Token string `yaml:"token"`
	Log   Log    `yaml:"log"`
}

// Log holds logging configuration.
type Log struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a YAML file. A missing file is not an
// error; defaults apply.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if token := os.Getenv("PASTEMYST_TOKEN"); token != "" {
		cfg.Token = token
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return &cfg, nil
}
