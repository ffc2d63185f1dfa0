// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package radar probes the fuzzy neighborhood of a candidate mark for
// near-collisions across namespaces.
package radar

import (
	"context"
	"sort"
	"sync"

	"github.com/antzucaro/matchr"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/variants"
	"golang.org/x/sync/errgroup"
)

// DefaultThreshold is the minimum similarity that counts as a near-collision.
const DefaultThreshold = 0.75

// CheckFunc probes one namespace for a single name.
type CheckFunc func(context.Context, string) (clearance.Record, error)

// Hit is a taken neighbor with its similarity to the candidate mark.
type Hit struct {
	Variant    variants.Variant `json:"variant"`
	Record     clearance.Record `json:"record"`
	Similarity float64          `json:"similarity"`
}

// Scanner fans variants out over a set of namespace probes.
type Scanner struct {
	Checks      []CheckFunc
	Threshold   float64
	Concurrency int
}

// Similarity scores two names in [0,1] as 1 - dist/maxLen using
// Damerau-Levenshtein distance. Equal strings score 1.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	dist := matchr.DamerauLevenshtein(a, b)
	s := 1 - float64(dist)/float64(maxLen)
	if s < 0 {
		return 0
	}
	return s
}

// Scan probes every variant through every check and returns taken neighbors
// at or above the threshold, deterministically ordered by descending
// similarity then (variant value, namespace).
func (s Scanner) Scan(ctx context.Context, mark string, vs []variants.Variant) ([]Hit, error) {
	threshold := s.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	base := variants.Normalize(mark)
	g, ctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	} else {
		g.SetLimit(8)
	}
	var mu sync.Mutex
	var hits []Hit
	for _, v := range vs {
		for _, check := range s.Checks {
			v, check := v, check
			g.Go(func() error {
				rec, err := check(ctx, v.Value)
				if err != nil {
					return err
				}
				if rec.Check.Status != clearance.StatusTaken {
					return nil
				}
				sim := Similarity(base, v.Value)
				if sim < threshold {
					return nil
				}
				mu.Lock()
				hits = append(hits, Hit{Variant: v, Record: rec, Similarity: sim})
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		if hits[i].Variant.Value != hits[j].Variant.Value {
			return hits[i].Variant.Value < hits[j].Variant.Value
		}
		return hits[i].Record.Check.Namespace < hits[j].Record.Check.Namespace
	})
	return hits, nil
}
