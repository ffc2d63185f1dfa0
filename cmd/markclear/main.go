// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/markclear/markclear/internal/cache"
	"github.com/markclear/markclear/internal/httpx"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/adapters/cratesio"
	"github.com/markclear/markclear/pkg/clearance/adapters/dockerhub"
	"github.com/markclear/markclear/pkg/clearance/adapters/github"
	"github.com/markclear/markclear/pkg/clearance/adapters/huggingface"
	"github.com/markclear/markclear/pkg/clearance/adapters/npm"
	"github.com/markclear/markclear/pkg/clearance/adapters/pypi"
	"github.com/markclear/markclear/pkg/clearance/adapters/rdap"
	"github.com/markclear/markclear/pkg/clearance/config"
	"github.com/markclear/markclear/pkg/clearance/manifest"
	"github.com/markclear/markclear/pkg/clearance/opinion"
	"github.com/markclear/markclear/pkg/clearance/radar"
	"github.com/markclear/markclear/pkg/clearance/report"
	"github.com/markclear/markclear/pkg/clearance/runner"
	"github.com/markclear/markclear/pkg/clearance/variants"
)

const userAgent = "markclear/" + clearance.EngineVersion

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	white  = color.New(color.FgWhite).SprintFunc()
)

var (
	configPath string
	cacheDir   string
	channels   []string
	tlds       []string
	outDir     string
	noRadar    bool
)

var rootCmd = &cobra.Command{
	Use:   "markclear [subcommand]",
	Short: "Clearance opinions for project names across public namespaces",
	// Silence errors because we will print the error ourselves in main.
	SilenceErrors: true,
	SilenceUsage:  true,
}

var checkCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Produce a clearance opinion for a candidate name.",
	Long: `Check a candidate name across code hosts, package registries, container
registries, model hubs, and DNS, then emit a GREEN/YELLOW/RED opinion with a
content-addressed evidence chain in the run directory.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return clearance.Error{Code: clearance.CodeInitNoArgs, Message: "candidate name required"}
		}
		mark := args[0]
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, ch := range channels {
			if !runner.KnownChannel(ch) {
				return clearance.Error{
					Code:    clearance.CodeInitBadChannel,
					Message: fmt.Sprintf("unknown channel %q", ch),
					Context: map[string]string{"known": strings.Join(runner.AllChannels, ",")},
				}
			}
		}
		if len(tlds) > 0 {
			cfg.TLDs = tlds
		}

		client := buildClient(cfg)
		checkers := runner.Checkers{
			GitHub:      github.HTTPChecker{Client: client, Token: cfg.GitHubToken},
			NPM:         npm.HTTPChecker{Client: client},
			PyPI:        pypi.HTTPChecker{Client: client},
			Crates:      cratesio.HTTPChecker{Client: client},
			DockerHub:   dockerhub.HTTPChecker{Client: client},
			HuggingFace: huggingface.HTTPChecker{Client: client},
			Domain:      rdap.HTTPChecker{Client: client},
		}
		run := &runner.Runner{Concurrency: cfg.Concurrency}
		if cfg.CacheDir != "" {
			c, err := cache.New(cfg.CacheDir, cache.WithMaxAge(cfg.CacheTTL()))
			if err != nil {
				return err
			}
			run.Cache = c
		}

		ctx := cmd.Context()
		records, err := run.Run(ctx, runner.Plan(mark, channels, cfg.TLDs, checkers))
		if err != nil {
			return errors.Wrap(err, "running checks")
		}

		var hits []radar.Hit
		if !noRadar {
			npmChecker, pypiChecker, cratesChecker := npm.HTTPChecker{Client: client}, pypi.HTTPChecker{Client: client}, cratesio.HTTPChecker{Client: client}
			scanner := radar.Scanner{
				Concurrency: cfg.Concurrency,
				Checks: []radar.CheckFunc{
					npmChecker.CheckPackage,
					pypiChecker.CheckProject,
					cratesChecker.CheckCrate,
				},
			}
			hits, err = scanner.Scan(ctx, mark, variants.Generate(mark, variants.DefaultOptions))
			if err != nil {
				return errors.Wrap(err, "scanning collision radar")
			}
		}

		op := opinion.Score(records, hits, cfg.Weights)
		dir, err := writeRun(mark, op, records, hits)
		if err != nil {
			return err
		}

		tint := white
		switch op.Tier {
		case opinion.TierGreen:
			tint = green
		case opinion.TierYellow:
			tint = yellow
		case opinion.TierRed:
			tint = red
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (score %d/100)\n", tint(string(op.Tier)), mark, op.Score)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", op.Rationale)
		fmt.Fprintf(cmd.OutOrStdout(), "run artifacts: %s\n", dir)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:           "verify <manifest.json>",
	Short:         "Replay-verify a run directory against its manifest.",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := manifest.Verify(args[0])
		if err != nil {
			return err
		}
		if !res.Verified {
			for _, m := range res.Mismatches {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s: %s\n", red("FAIL"), m.Path, m.Reason)
			}
			return clearance.Error{
				Code:    clearance.CodeLockMismatch,
				Message: fmt.Sprintf("%d artifact(s) failed verification", len(res.Mismatches)),
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  all artifacts verified\n", green("OK"))
		return nil
	},
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the check cache.",
}

var expiredOnly bool

var cacheClearCmd = &cobra.Command{
	Use:           "clear",
	Short:         "Remove cache entries.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}
		n, err := c.Clear(expiredOnly)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %d entries\n", n)
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:           "stats",
	Short:         "Show cache entry count and size.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCache()
		if err != nil {
			return err
		}
		s, err := c.Stats()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d bytes\n", s.Entries, s.TotalBytes)
		return nil
	},
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	// Flag beats env beats file.
	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	return cfg, nil
}

func openCache() (*cache.FileCache, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.CacheDir == "" {
		return nil, clearance.Error{Code: clearance.CodeInitNoArgs, Message: "no cache directory configured (set --cache-dir or COE_CACHE_DIR)"}
	}
	return cache.New(cfg.CacheDir, cache.WithMaxAge(cfg.CacheTTL()))
}

func buildClient(cfg config.Config) httpx.BasicClient {
	base := httpx.BasicClient(&http.Client{}) // follows RDAP 302s by default
	if cfg.RequestsPerSecond > 0 {
		base = &httpx.RateLimitedClient{
			BasicClient: base,
			Limiter:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		}
	}
	return &httpx.WithUserAgent{
		BasicClient: &httpx.WithTimeout{BasicClient: base, Timeout: cfg.Timeout()},
		UserAgent:   userAgent,
	}
}

func writeRun(mark string, op opinion.Opinion, records []clearance.Record, hits []radar.Hit) (string, error) {
	dir := outDir
	if dir == "" {
		dir = filepath.Join("runs", uuid.NewString())
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "creating run dir")
	}
	writeJSON := func(name string, v any) error {
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "marshaling %s", name)
		}
		return errors.Wrapf(os.WriteFile(filepath.Join(dir, name), append(raw, '\n'), 0o644), "writing %s", name)
	}
	if err := writeJSON("checks.json", records); err != nil {
		return "", err
	}
	if err := writeJSON("opinion.json", op); err != nil {
		return "", err
	}
	f, err := os.Create(filepath.Join(dir, "report.md"))
	if err != nil {
		return "", clearance.Error{Code: clearance.CodeRenderWriteFail, Message: err.Error()}
	}
	if err := report.WriteMarkdown(f, mark, op, records, hits); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", clearance.Error{Code: clearance.CodeRenderWriteFail, Message: err.Error()}
	}
	m, err := manifest.Generate(dir, clearance.Clock(time.Now))
	if err != nil {
		return "", err
	}
	return dir, manifest.Write(m, filepath.Join(dir, manifest.Filename))
}

// exitCode maps structured failures to the documented process exit codes.
func exitCode(err error) int {
	var ce clearance.Error
	if errors.As(err, &ce) {
		if strings.HasPrefix(ce.Code, "COE.INIT.") {
			return 2
		}
	}
	return 1
}

func main() {
	checkCmd.Flags().StringVar(&configPath, "config", "", "path to YAML configuration")
	checkCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "check cache directory (overrides COE_CACHE_DIR)")
	checkCmd.Flags().StringSliceVar(&channels, "channels", runner.AllChannels, "namespace channels to probe")
	checkCmd.Flags().StringSliceVar(&tlds, "tlds", nil, "TLDs for domain checks (overrides config)")
	checkCmd.Flags().StringVar(&outDir, "out", "", "run directory (default runs/<uuid>)")
	checkCmd.Flags().BoolVar(&noRadar, "no-radar", false, "skip the collision radar scan")
	cacheClearCmd.Flags().BoolVar(&expiredOnly, "expired-only", false, "only remove expired entries")
	cacheCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "check cache directory (overrides COE_CACHE_DIR)")
	cacheCmd.AddCommand(cacheClearCmd, cacheStatsCmd)
	rootCmd.AddCommand(checkCmd, verifyCmd, cacheCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, red("ERROR:"), err.Error())
		os.Exit(exitCode(err))
	}
}
