// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package cache provides a content-addressed disk memo for check results.
//
// Entries are keyed by the canonical hash of (adapter, query, engineVersion)
// so a version bump invalidates everything by construction. Within the TTL,
// entries for the same key are semantically equivalent, which makes
// last-writer-wins acceptable for concurrent writers.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/markclear/markclear/internal/hashx"
	"github.com/pkg/errors"
)

// DefaultMaxAge is how long entries stay fresh unless configured otherwise.
const DefaultMaxAge = 168 * time.Hour

// Entry is the on-disk record: one JSON file per key at <dir>/<key>.json.
type Entry struct {
	Key       string          `json:"key"`
	CreatedAt string          `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Stats summarizes cache contents.
type Stats struct {
	Entries    int   `json:"entries"`
	TotalBytes int64 `json:"totalBytes"`
}

// Option configures a FileCache.
type Option func(*FileCache)

// WithMaxAge overrides the entry TTL.
func WithMaxAge(d time.Duration) Option {
	return func(c *FileCache) { c.maxAge = d }
}

// WithClock injects the time source used for stamping and expiry.
func WithClock(now func() time.Time) Option {
	return func(c *FileCache) { c.now = now }
}

// FileCache is a disk-backed memo, one file per entry.
type FileCache struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// New creates the cache directory if needed and returns a FileCache.
func New(dir string, opts ...Option) (*FileCache, error) {
	c := &FileCache{dir: dir, maxAge: DefaultMaxAge, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache dir")
	}
	return c, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Key derives the 64-hex content address for (adapter, query, version).
// Any change to any of the three inputs changes the key.
func Key(adapter string, query any, version string) (string, error) {
	return hashx.HashObject(struct {
		Adapter string `json:"adapter"`
		Query   any    `json:"query"`
		Version string `json:"engineVersion"`
	}{adapter, query, version})
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the entry for (adapter, query, version), or nil if the entry is
// absent, unparseable, or expired. Corruption never surfaces as an error.
func (c *FileCache) Get(adapter string, query any, version string) (*Entry, error) {
	key, err := Key(adapter, query, version)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, nil
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, nil
	}
	if c.expired(e.CreatedAt) {
		return nil, nil
	}
	return &e, nil
}

func (c *FileCache) expired(createdAt string) bool {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return true
	}
	return !c.now().Before(t.Add(c.maxAge))
}

// Set stores data for (adapter, query, version), stamped with the injected
// clock. The write is temp-file + rename so readers never observe torn JSON.
// A cancelled context aborts before anything reaches the final path.
func (c *FileCache) Set(ctx context.Context, adapter string, query any, version string, data any) error {
	key, err := Key(adapter, query, version)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshaling cache data")
	}
	enc, err := json.Marshal(Entry{Key: key, CreatedAt: c.now().UTC().Format(time.RFC3339), Data: raw})
	if err != nil {
		return errors.Wrap(err, "marshaling cache entry")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	if _, err := tmp.Write(enc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing cache entry")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing temp file")
	}
	if err := ctx.Err(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return errors.Wrap(os.Rename(tmp.Name(), c.path(key)), "publishing cache entry")
}

// Clear removes entries, or only expired ones when expiredOnly is set.
// Removal is best-effort per entry; the count covers successful removals.
func (c *FileCache) Clear(expiredOnly bool) (int, error) {
	names, err := c.entryFiles()
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, name := range names {
		path := filepath.Join(c.dir, name)
		if expiredOnly {
			raw, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			var e Entry
			if err := json.Unmarshal(raw, &e); err == nil && !c.expired(e.CreatedAt) {
				continue
			}
		}
		if os.Remove(path) == nil {
			cleared++
		}
	}
	return cleared, nil
}

// Stats reports entry count and total bytes on disk.
func (c *FileCache) Stats() (Stats, error) {
	names, err := c.entryFiles()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, name := range names {
		info, err := os.Stat(filepath.Join(c.dir, name))
		if err != nil {
			continue
		}
		s.Entries++
		s.TotalBytes += info.Size()
	}
	return s, nil
}

func (c *FileCache) entryFiles() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading cache dir")
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
