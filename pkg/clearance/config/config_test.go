// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Weights.Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if diff := cmp.Diff([]string{"com", "dev", "io", "ai"}, cfg.TLDs); diff != "" {
		t.Fatalf("tlds mismatch (-want +got):\n%s", diff)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout())
	}
	if cfg.CacheTTL() != 168*time.Hour {
		t.Fatalf("cache ttl = %v", cfg.CacheTTL())
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coe.yaml")
	body := `
tlds: [sh]
concurrency: 2
timeoutSeconds: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"sh"}, cfg.TLDs); diff != "" {
		t.Fatalf("tlds mismatch (-want +got):\n%s", diff)
	}
	if cfg.Concurrency != 2 || cfg.TimeoutSeconds != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.CacheTTLHours != 168 {
		t.Fatalf("cacheTtlHours = %d, want default 168", cfg.CacheTTLHours)
	}
	if err := cfg.Weights.Validate(); err != nil {
		t.Fatalf("weights lost on overlay: %v", err)
	}
}

func TestLoadRejectsBadWeights(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coe.yaml")
	body := `
weights:
  primary: 0.9
  secondary: 0.9
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("weights summing past 1 accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing config file accepted")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCacheDir, "/tmp/coe-cache")
	t.Setenv(EnvGitHubToken, "tok123")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.CacheDir != "/tmp/coe-cache" {
		t.Fatalf("cacheDir = %q", cfg.CacheDir)
	}
	if cfg.GitHubToken != "tok123" {
		t.Fatalf("token not read from env")
	}
}

func TestApplyEnvDoesNotOverrideExplicitCacheDir(t *testing.T) {
	t.Setenv(EnvCacheDir, "/tmp/from-env")
	cfg := Default()
	cfg.CacheDir = "/tmp/explicit"
	cfg.ApplyEnv()
	if cfg.CacheDir != "/tmp/explicit" {
		t.Fatalf("cacheDir = %q, want explicit value kept", cfg.CacheDir)
	}
}
