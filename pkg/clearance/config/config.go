// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package config resolves engine settings from YAML files and environment.
// Precedence: explicit flag > environment > file > default.
package config

import (
	"os"
	"time"

	"github.com/markclear/markclear/pkg/clearance/opinion"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvCacheDir    = "COE_CACHE_DIR"
	EnvGitHubToken = "GITHUB_TOKEN"
)

// Config is the full engine configuration.
type Config struct {
	Weights        opinion.Weights `yaml:"weights"`
	TLDs           []string        `yaml:"tlds"`
	Concurrency    int             `yaml:"concurrency"`
	TimeoutSeconds int             `yaml:"timeoutSeconds"`
	// RequestsPerSecond paces all outbound calls; zero disables pacing.
	RequestsPerSecond int `yaml:"requestsPerSecond"`
	CacheDir       string          `yaml:"cacheDir"`
	CacheTTLHours  int             `yaml:"cacheTtlHours"`

	// GitHubToken comes only from the environment; it is never written to
	// disk and never logged.
	GitHubToken string `yaml:"-"`
}

// Default returns the shipped configuration.
func Default() Config {
	return Config{
		Weights:           opinion.DefaultWeights,
		TLDs:              []string{"com", "dev", "io", "ai"},
		Concurrency:       8,
		TimeoutSeconds:    10,
		RequestsPerSecond: 8,
		CacheTTLHours:     168,
	}
}

// Load overlays the YAML file at path on the defaults and validates weights.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Weights.Validate(); err != nil {
		return cfg, errors.Wrap(err, "validating weights")
	}
	return cfg, nil
}

// ApplyEnv overlays environment settings. An empty COE_CACHE_DIR leaves the
// current value; a cache dir that is still empty afterwards disables caching.
func (c *Config) ApplyEnv() {
	if c.CacheDir == "" {
		c.CacheDir = os.Getenv(EnvCacheDir)
	}
	c.GitHubToken = os.Getenv(EnvGitHubToken)
}

// Timeout returns the per-call transport deadline.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}
