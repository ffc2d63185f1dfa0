// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package clearance

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalQuery(t *testing.T) {
	for _, tc := range []struct {
		name string
		q    map[string]string
		want string
	}{
		{name: "single", q: map[string]string{"name": "acme"}, want: "name=acme"},
		{name: "sorted", q: map[string]string{"owner": "a", "name": "b"}, want: "name=b&owner=a"},
		{name: "empty", q: nil, want: ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalQuery(tc.q); got != tc.want {
				t.Fatalf("CanonicalQuery = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCheckIDDeterminism(t *testing.T) {
	a := CheckID(NamespaceNPM, map[string]string{"name": "acme"})
	b := CheckID(NamespaceNPM, map[string]string{"name": "acme"})
	if a != b {
		t.Fatalf("equal queries produced different ids: %s vs %s", a, b)
	}
	if a == CheckID(NamespaceGitHubOrg, map[string]string{"name": "acme"}) {
		t.Fatal("namespace not part of identity")
	}
}

func TestClockStamp(t *testing.T) {
	c := Clock(func() time.Time {
		return time.Date(2026, 2, 15, 13, 30, 0, 0, time.FixedZone("CET", 3600))
	})
	if got := c.Stamp(); got != "2026-02-15T12:30:00Z" {
		t.Fatalf("Stamp = %s, want UTC rendering", got)
	}
}

func TestSortRecords(t *testing.T) {
	records := []Record{
		{Check: Check{Namespace: NamespacePyPI, Query: map[string]string{"name": "b"}}},
		{Check: Check{Namespace: NamespaceDomain, Query: map[string]string{"value": "b.com"}}},
		{Check: Check{Namespace: NamespaceDomain, Query: map[string]string{"value": "a.com"}}},
		{Check: Check{Namespace: NamespaceNPM, Query: map[string]string{"name": "b"}}},
	}
	SortRecords(records)
	var got []string
	for _, r := range records {
		got = append(got, string(r.Check.Namespace)+"/"+CanonicalQuery(r.Check.Query))
	}
	want := []string{
		"domain/value=a.com",
		"domain/value=b.com",
		"npm/name=b",
		"pypi/name=b",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorString(t *testing.T) {
	err := Error{Code: CodeNPMFail, Message: "boom"}
	if err.Error() != "COE.ADAPTER.NPM_FAIL: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
}
