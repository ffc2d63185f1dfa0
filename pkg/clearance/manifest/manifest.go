// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest hashes a run directory into a lockfile whose root hash
// lets a third party verify every artifact byte-for-byte.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/markclear/markclear/internal/hashx"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/pkg/errors"
)

// Filename is the manifest's own name; it is excluded from hashing.
const Filename = "manifest.json"

// Artifact is one hashed file in a run directory.
type Artifact struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Bytes  int64  `json:"bytes"`
}

// Manifest is the lockfile for one run directory. RootSHA256 is the canonical
// hash of the manifest with RootSHA256 itself elided.
type Manifest struct {
	GeneratedAt string     `json:"generatedAt"`
	Files       []Artifact `json:"files"`
	RootSHA256  string     `json:"rootSha256,omitempty"`
}

// Mismatch describes one verification failure.
type Mismatch struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Want   string `json:"want,omitempty"`
	Got    string `json:"got,omitempty"`
}

// Result summarizes a verification pass. Any mismatch fails verification.
type Result struct {
	Verified   bool       `json:"verified"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// Generate hashes every regular file in dir (excluding the manifest itself
// and dotfiles), sorted by name, and computes the root hash.
func Generate(dir string, now clearance.Clock) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading run dir")
	}
	m := &Manifest{GeneratedAt: now.Stamp(), Files: []Artifact{}}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name() == Filename || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		sum, n, err := hashx.HashFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "hashing %s", name)
		}
		m.Files = append(m.Files, Artifact{Path: name, SHA256: sum, Bytes: n})
	}
	root, err := m.root()
	if err != nil {
		return nil, err
	}
	m.RootSHA256 = root
	return m, nil
}

// root hashes the manifest with RootSHA256 elided.
func (m *Manifest) root() (string, error) {
	unsealed := Manifest{GeneratedAt: m.GeneratedAt, Files: m.Files}
	return hashx.HashObject(unsealed)
}

// Write serializes the manifest pretty-printed with a trailing newline.
func Write(m *Manifest, path string) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling manifest")
	}
	return errors.Wrap(os.WriteFile(path, append(raw, '\n'), 0o644), "writing manifest")
}

// Verify rehashes every file the manifest at path lists, plus the root hash,
// and reports per-file mismatches.
func Verify(path string) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Result{}, errors.Wrap(err, "reading manifest")
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Result{}, errors.Wrap(err, "parsing manifest")
	}
	var mismatches []Mismatch
	root, err := m.root()
	if err != nil {
		return Result{}, err
	}
	if root != m.RootSHA256 {
		mismatches = append(mismatches, Mismatch{Path: Filename, Reason: "root hash mismatch", Want: m.RootSHA256, Got: root})
	}
	dir := filepath.Dir(path)
	for _, f := range m.Files {
		sum, n, err := hashx.HashFile(filepath.Join(dir, f.Path))
		if err != nil {
			mismatches = append(mismatches, Mismatch{Path: f.Path, Reason: "missing"})
			continue
		}
		if sum != f.SHA256 {
			mismatches = append(mismatches, Mismatch{Path: f.Path, Reason: "content mismatch", Want: f.SHA256, Got: sum})
		} else if n != f.Bytes {
			mismatches = append(mismatches, Mismatch{Path: f.Path, Reason: "size mismatch"})
		}
	}
	return Result{Verified: len(mismatches) == 0, Mismatches: mismatches}, nil
}
