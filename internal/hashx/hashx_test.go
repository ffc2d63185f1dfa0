// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package hashx

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestHashString(t *testing.T) {
	got := HashString("hello")
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if got != want {
		t.Fatalf("HashString(hello) = %s, want %s", got, want)
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, n, err := HashFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sum != HashString("hello") {
		t.Fatalf("HashFile = %s, want %s", sum, HashString("hello"))
	}
	if n != 5 {
		t.Fatalf("HashFile bytes = %d, want 5", n)
	}
}

func TestHashFileMissing(t *testing.T) {
	if _, _, err := HashFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHashObjectKeyOrderIndependence(t *testing.T) {
	type ab struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	type ba struct {
		B int `json:"b"`
		A int `json:"a"`
	}
	h1, err := HashObject(ab{A: 1, B: 2})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashObject(ba{B: 2, A: 1})
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatalf("field order changed hash: %s vs %s", h1, h2)
	}
}

func TestHashObjectProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("stable across calls", prop.ForAll(
		func(m map[string]string) bool {
			h1, err1 := HashObject(m)
			h2, err2 := HashObject(m)
			return err1 == nil && err2 == nil && h1 == h2
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))
	properties.Property("insensitive to map rebuild order", prop.ForAll(
		func(m map[string]string) bool {
			rebuilt := make(map[string]string, len(m))
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			for i := len(keys) - 1; i >= 0; i-- {
				rebuilt[keys[i]] = m[keys[i]]
			}
			h1, _ := HashObject(m)
			h2, _ := HashObject(rebuilt)
			return h1 == h2
		},
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))
	properties.TestingRun(t)
}

func TestCheckID(t *testing.T) {
	id := CheckID("npm", "name=left-pad")
	if !regexp.MustCompile(`^chk\.npm\.[a-f0-9]{12}$`).MatchString(id) {
		t.Fatalf("unexpected id format: %s", id)
	}
	if id != CheckID("npm", "name=left-pad") {
		t.Fatal("CheckID is not deterministic")
	}
	if id == CheckID("pypi", "name=left-pad") {
		t.Fatal("CheckID ignores namespace")
	}
	if id == CheckID("npm", "name=leftpad") {
		t.Fatal("CheckID ignores query")
	}
}

func TestEvidenceID(t *testing.T) {
	checkID := CheckID("npm", "name=left-pad")
	evID := EvidenceID(checkID, 0)
	tail := checkID[len(checkID)-12:]
	if want := "ev." + tail + ".0"; evID != want {
		t.Fatalf("EvidenceID = %s, want %s", evID, want)
	}
}
