// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package opinion aggregates checks and radar hits into a tiered verdict.
package opinion

import (
	"fmt"
	"math"

	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/radar"
	"github.com/markclear/markclear/pkg/clearance/variants"
	"github.com/pkg/errors"
)

// Tier is the summary verdict.
type Tier string

const (
	TierGreen  Tier = "GREEN"
	TierYellow Tier = "YELLOW"
	TierRed    Tier = "RED"
)

// Tier thresholds over the composite 0..100 score.
const (
	greenFloor  = 85
	yellowFloor = 60
)

// Dimension names are stable strings in the breakdown.
const (
	DimPrimary    = "primary-namespaces-available"
	DimSecondary  = "secondary-namespaces-available"
	DimDomain     = "domain-available"
	DimCollisions = "no-close-collisions"
	DimLinguistic = "linguistic-cleanliness"
)

// Weights distributes scoring across dimensions; they must sum to 1.
type Weights struct {
	Primary    float64 `yaml:"primary" json:"primary"`
	Secondary  float64 `yaml:"secondary" json:"secondary"`
	Domain     float64 `yaml:"domain" json:"domain"`
	Collisions float64 `yaml:"collisions" json:"collisions"`
	Linguistic float64 `yaml:"linguistic" json:"linguistic"`
}

// DefaultWeights is the shipped scoring distribution.
var DefaultWeights = Weights{
	Primary:    0.45,
	Secondary:  0.15,
	Domain:     0.15,
	Collisions: 0.15,
	Linguistic: 0.10,
}

// Validate rejects weight sets that do not sum to 1.
func (w Weights) Validate() error {
	sum := w.Primary + w.Secondary + w.Domain + w.Collisions + w.Linguistic
	if math.Abs(sum-1) > 1e-9 {
		return errors.Errorf("weights must sum to 1, got %v", sum)
	}
	return nil
}

// BreakdownEntry is one dimension's contribution to the composite score.
type BreakdownEntry struct {
	Dimension    string  `json:"dimension"`
	Weight       float64 `json:"weight"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"`
}

// Opinion is the engine's verdict over all checks and radar hits.
type Opinion struct {
	Tier      Tier             `json:"tier"`
	Score     int              `json:"score"`
	Breakdown []BreakdownEntry `json:"breakdown"`
	Rationale string           `json:"rationale"`
}

var primaryNamespaces = map[clearance.Namespace]bool{
	clearance.NamespaceNPM:        true,
	clearance.NamespaceGitHubOrg:  true,
	clearance.NamespaceGitHubRepo: true,
	clearance.NamespacePyPI:       true,
}

var secondaryNamespaces = map[clearance.Namespace]bool{
	clearance.NamespaceCrates:    true,
	clearance.NamespaceDockerHub: true,
	clearance.NamespaceHFModel:   true,
	clearance.NamespaceHFSpace:   true,
}

// Score aggregates sorted checks and radar hits into an Opinion.
func Score(records []clearance.Record, hits []radar.Hit, w Weights) Opinion {
	var primary, secondary, domain []clearance.Record
	for _, r := range records {
		switch {
		case primaryNamespaces[r.Check.Namespace]:
			primary = append(primary, r)
		case secondaryNamespaces[r.Check.Namespace]:
			secondary = append(secondary, r)
		case r.Check.Namespace == clearance.NamespaceDomain:
			domain = append(domain, r)
		}
	}
	breakdown := []BreakdownEntry{
		entry(DimPrimary, w.Primary, meanAvailability(primary)),
		entry(DimSecondary, w.Secondary, meanAvailability(secondary)),
		entry(DimDomain, w.Domain, meanAvailability(domain)),
		entry(DimCollisions, w.Collisions, collisionScore(hits)),
		entry(DimLinguistic, w.Linguistic, linguisticScore(hits)),
	}
	var composite float64
	for _, e := range breakdown {
		composite += e.Contribution
	}
	score := int(math.Round(composite))

	takenPrimaries := 0
	for _, r := range primary {
		if r.Check.Status == clearance.StatusTaken && r.Check.Authority == clearance.AuthorityAuthoritative {
			takenPrimaries++
		}
	}
	tier := tierFor(score)
	rationale := fmt.Sprintf("composite score %d across %d checks and %d near-collisions", score, len(records), len(hits))
	switch {
	case takenPrimaries >= 2:
		tier = TierRed
		rationale = fmt.Sprintf("%d primary namespaces authoritatively taken", takenPrimaries)
	case takenPrimaries == 1 && tier == TierGreen:
		tier = TierYellow
		rationale = "a primary namespace is authoritatively taken"
	}
	return Opinion{Tier: tier, Score: score, Breakdown: breakdown, Rationale: rationale}
}

func tierFor(score int) Tier {
	switch {
	case score >= greenFloor:
		return TierGreen
	case score >= yellowFloor:
		return TierYellow
	default:
		return TierRed
	}
}

func entry(dim string, weight, value float64) BreakdownEntry {
	return BreakdownEntry{Dimension: dim, Weight: weight, Value: value, Contribution: weight * value * 100}
}

// meanAvailability scores available=1, unknown=0.5, taken=0 over the group.
// An empty group counts as fully unknown.
func meanAvailability(records []clearance.Record) float64 {
	if len(records) == 0 {
		return 0.5
	}
	var sum float64
	for _, r := range records {
		switch r.Check.Status {
		case clearance.StatusAvailable:
			sum += 1
		case clearance.StatusUnknown:
			sum += 0.5
		}
	}
	return sum / float64(len(records))
}

// collisionScore is 1 minus the strongest near-collision similarity.
func collisionScore(hits []radar.Hit) float64 {
	var worst float64
	for _, h := range hits {
		if h.Similarity > worst {
			worst = h.Similarity
		}
	}
	return 1 - worst
}

// linguisticScore is 1 minus the fraction of variant categories that
// produced any taken neighbor.
func linguisticScore(hits []radar.Hit) float64 {
	dirty := make(map[variants.Category]bool)
	for _, h := range hits {
		if h.Record.Check.Status == clearance.StatusTaken {
			dirty[h.Variant.Category] = true
		}
	}
	return 1 - float64(len(dirty))/float64(len(variants.Categories))
}
