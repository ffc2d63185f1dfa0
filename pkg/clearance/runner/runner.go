// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner orchestrates a batch of namespace checks: bounded
// concurrency, content-addressed memoization, and deterministic ordering of
// the results handed to the opinion engine.
package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/markclear/markclear/internal/cache"
	"github.com/markclear/markclear/pkg/clearance"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultConcurrency bounds parallel adapter calls per run.
const DefaultConcurrency = 8

// DefaultTimeout bounds each transport call.
const DefaultTimeout = 10 * time.Second

// Task is one planned check. Adapter and Query feed the cache key; Run
// performs the actual adapter call.
type Task struct {
	Adapter string
	Query   map[string]string
	Run     func(context.Context) (clearance.Record, error)
}

// Runner executes check batches. A nil Cache disables memoization.
type Runner struct {
	Cache       *cache.FileCache
	Concurrency int
	Now         clearance.Clock

	flight singleflight.Group
}

// Run executes all tasks concurrently and returns records sorted by
// (namespace, canonical query) so the opinion is independent of completion
// order. Cancellation stops in-flight work and suppresses cache writes.
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]clearance.Record, error) {
	g, ctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g.SetLimit(limit)
	results := make([]clearance.Record, len(tasks))
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			rec, err := r.runOne(ctx, t)
			if err != nil {
				return err
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	clearance.SortRecords(results)
	return results, nil
}

// runOne consults the cache, coalesces concurrent identical checks, and
// stores fresh results. Cache lookups and writes are keyed by
// (adapter, query, engine version).
func (r *Runner) runOne(ctx context.Context, t Task) (clearance.Record, error) {
	key, err := cache.Key(t.Adapter, t.Query, clearance.EngineVersion)
	if err != nil {
		return clearance.Record{}, err
	}
	v, err, _ := r.flight.Do(key, func() (any, error) {
		if r.Cache != nil {
			if entry, err := r.Cache.Get(t.Adapter, t.Query, clearance.EngineVersion); err == nil && entry != nil {
				var rec clearance.Record
				if json.Unmarshal(entry.Data, &rec) == nil {
					return rec, nil
				}
			}
		}
		rec, err := t.Run(ctx)
		if err != nil {
			return clearance.Record{}, err
		}
		if r.Cache != nil && ctx.Err() == nil {
			if err := r.Cache.Set(ctx, t.Adapter, t.Query, clearance.EngineVersion, rec); err != nil {
				return clearance.Record{}, err
			}
		}
		return rec, nil
	})
	if err != nil {
		return clearance.Record{}, err
	}
	return v.(clearance.Record), nil
}
