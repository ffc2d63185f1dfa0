// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package opinion

import (
	"testing"

	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/radar"
	"github.com/markclear/markclear/pkg/clearance/variants"
)

func rec(ns clearance.Namespace, status clearance.Status, authority clearance.Authority) clearance.Record {
	return clearance.Record{Check: clearance.Check{
		Namespace: ns,
		Query:     map[string]string{"name": "acme"},
		Status:    status,
		Authority: authority,
	}}
}

func allAvailable() []clearance.Record {
	var out []clearance.Record
	for _, ns := range []clearance.Namespace{
		clearance.NamespaceNPM, clearance.NamespaceGitHubOrg, clearance.NamespaceGitHubRepo, clearance.NamespacePyPI,
		clearance.NamespaceCrates, clearance.NamespaceDockerHub, clearance.NamespaceHFModel, clearance.NamespaceHFSpace,
		clearance.NamespaceDomain,
	} {
		out = append(out, rec(ns, clearance.StatusAvailable, clearance.AuthorityAuthoritative))
	}
	return out
}

func TestScoreAllAvailableIsGreen(t *testing.T) {
	op := Score(allAvailable(), nil, DefaultWeights)
	if op.Score != 100 {
		t.Fatalf("score = %d, want 100", op.Score)
	}
	if op.Tier != TierGreen {
		t.Fatalf("tier = %s, want GREEN", op.Tier)
	}
	if len(op.Breakdown) != 5 {
		t.Fatalf("breakdown has %d entries, want 5", len(op.Breakdown))
	}
	var sum float64
	for _, e := range op.Breakdown {
		sum += e.Contribution
	}
	if sum != 100 {
		t.Fatalf("contributions sum to %v, want 100", sum)
	}
}

func TestScoreOnePrimaryTakenClampsToYellow(t *testing.T) {
	records := allAvailable()
	records[0] = rec(clearance.NamespaceNPM, clearance.StatusTaken, clearance.AuthorityAuthoritative)
	op := Score(records, nil, DefaultWeights)
	// Composite alone would clear the GREEN floor; the clamp holds it down.
	if op.Score < greenFloor {
		t.Fatalf("score = %d, expected composite above the green floor", op.Score)
	}
	if op.Tier != TierYellow {
		t.Fatalf("tier = %s, want YELLOW", op.Tier)
	}
}

func TestScoreTwoPrimariesTakenIsRed(t *testing.T) {
	records := allAvailable()
	records[0] = rec(clearance.NamespaceNPM, clearance.StatusTaken, clearance.AuthorityAuthoritative)
	records[3] = rec(clearance.NamespacePyPI, clearance.StatusTaken, clearance.AuthorityAuthoritative)
	op := Score(records, nil, DefaultWeights)
	if op.Tier != TierRed {
		t.Fatalf("tier = %s, want RED", op.Tier)
	}
}

func TestScoreIndicativeTakenDoesNotClamp(t *testing.T) {
	records := allAvailable()
	records[0] = rec(clearance.NamespaceNPM, clearance.StatusTaken, clearance.AuthorityIndicative)
	records[3] = rec(clearance.NamespacePyPI, clearance.StatusTaken, clearance.AuthorityIndicative)
	op := Score(records, nil, DefaultWeights)
	if op.Tier == TierRed {
		t.Fatal("indicative taken results must not trigger the red clamp")
	}
}

func TestScoreEmptyGroupsCountAsUnknown(t *testing.T) {
	op := Score(nil, nil, DefaultWeights)
	// .45*50 + .15*50 + .15*50 + 15 + 10 = 62.5, rounded half away from zero.
	if op.Score != 63 {
		t.Fatalf("score = %d, want 63", op.Score)
	}
	if op.Tier != TierYellow {
		t.Fatalf("tier = %s, want YELLOW", op.Tier)
	}
}

func TestScoreCollisionsDragTheScore(t *testing.T) {
	hit := radar.Hit{
		Variant:    variants.Variant{Category: variants.CategoryEdit, Value: "acmo"},
		Record:     rec(clearance.NamespaceNPM, clearance.StatusTaken, clearance.AuthorityAuthoritative),
		Similarity: 0.8,
	}
	clean := Score(allAvailable(), nil, DefaultWeights)
	noisy := Score(allAvailable(), []radar.Hit{hit}, DefaultWeights)
	if noisy.Score >= clean.Score {
		t.Fatalf("collision did not lower score: %d vs %d", noisy.Score, clean.Score)
	}
	// collisions: 1-0.8 -> 3 points of 15; linguistic: one dirty category of five -> 8 of 10.
	if noisy.Score != 86 {
		t.Fatalf("score = %d, want 86", noisy.Score)
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights.Validate(); err != nil {
		t.Fatalf("default weights rejected: %v", err)
	}
	bad := Weights{Primary: 0.5, Secondary: 0.5, Domain: 0.5}
	if err := bad.Validate(); err == nil {
		t.Fatal("weights summing to 1.5 accepted")
	}
}
