// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package clearance defines the core value types of the clearance pipeline.
//
// Every entity here is an immutable value produced by a pure function of
// (query, engine version, clock, transport response). Identifiers never
// depend on the clock or on response bytes.
package clearance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/markclear/markclear/internal/hashx"
)

// EngineVersion participates in cache keys; bumping it invalidates the cache.
const EngineVersion = "0.3.0"

// Clock supplies the current time. Core code never reads the system clock
// directly; tests substitute a fixed closure.
type Clock func() time.Time

// Stamp formats the clock's instant as ISO-8601 UTC.
func (c Clock) Stamp() string {
	return c().UTC().Format(time.RFC3339)
}

// Namespace tags the public system a Check speaks about.
type Namespace string

const (
	NamespaceGitHubOrg  Namespace = "github_org"
	NamespaceGitHubRepo Namespace = "github_repo"
	NamespaceNPM        Namespace = "npm"
	NamespacePyPI       Namespace = "pypi"
	NamespaceCrates     Namespace = "crates"
	NamespaceDockerHub  Namespace = "dockerhub"
	NamespaceHFModel    Namespace = "huggingface_model"
	NamespaceHFSpace    Namespace = "huggingface_space"
	NamespaceDomain     Namespace = "domain"
)

// Status is the availability verdict for one namespace.
type Status string

const (
	StatusAvailable Status = "available"
	StatusTaken     Status = "taken"
	StatusUnknown   Status = "unknown"
)

// Authority records whether the underlying system gave an unambiguous yes/no.
type Authority string

const (
	AuthorityAuthoritative Authority = "authoritative"
	AuthorityIndicative    Authority = "indicative"
)

// Claimability says whether the name could be registered right now.
type Claimability string

const (
	ClaimableNow Claimability = "claimable_now"
	NotClaimable Claimability = "not_claimable"
	ClaimUnknown Claimability = "unknown"
)

// EvidenceTypeHTTP is the only evidence type emitted today; dns_lookup and
// whois are reserved.
const EvidenceTypeHTTP = "http_response"

// Error is a structured, stable-code error carried on checks and surfaced to
// callers. Codes follow the COE.<CATEGORY>.<TYPE> pattern.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Source identifies the system an Evidence record was captured from.
type Source struct {
	System string `json:"system"`
	URL    string `json:"url"`
	Method string `json:"method"`
}

// Evidence is the content-hashed raw-response record that makes a Check
// replayable. On transport failure SHA256 and Bytes are absent and Notes
// carries the error.
type Evidence struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"`
	Source     Source   `json:"source"`
	ObservedAt string   `json:"observedAt"`
	SHA256     string   `json:"sha256,omitempty"`
	Bytes      int64    `json:"bytes,omitempty"`
	Repro      []string `json:"repro"`
	Notes      string   `json:"notes,omitempty"`
}

// Check is a single statement about one namespace.
type Check struct {
	ID           string            `json:"id"`
	Namespace    Namespace         `json:"namespace"`
	Query        map[string]string `json:"query"`
	Status       Status            `json:"status"`
	Authority    Authority         `json:"authority"`
	Claimability Claimability      `json:"claimability,omitempty"`
	ObservedAt   string            `json:"observedAt"`
	EvidenceRef  string            `json:"evidenceRef"`
	Errors       []Error           `json:"errors,omitempty"`
}

// Record pairs a Check with its Evidence; it is the unit the cache stores.
type Record struct {
	Check    Check    `json:"check"`
	Evidence Evidence `json:"evidence"`
}

// CanonicalQuery renders a query in its canonical string form: keys sorted
// lexicographically, each as k=v, joined by "&".
func CanonicalQuery(q map[string]string) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+q[k])
	}
	return strings.Join(pairs, "&")
}

// CheckID derives the deterministic identifier for a namespace query.
func CheckID(ns Namespace, query map[string]string) string {
	return hashx.CheckID(string(ns), CanonicalQuery(query))
}

// SortRecords orders records by (namespace, canonical query) so the opinion
// is independent of completion order.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Check.Namespace != records[j].Check.Namespace {
			return records[i].Check.Namespace < records[j].Check.Namespace
		}
		return CanonicalQuery(records[i].Check.Query) < CanonicalQuery(records[j].Check.Query)
	})
}
