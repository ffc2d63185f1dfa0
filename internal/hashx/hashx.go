// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package hashx provides content hashing and deterministic identifier derivation.
package hashx

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gowebpki/jcs"
	"github.com/pkg/errors"
)

// HashString returns the hex SHA-256 of the UTF-8 bytes of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 and byte length of the file at path.
// Bytes are hashed as-is with no newline normalization.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening file")
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, errors.Wrap(err, "hashing file")
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// HashObject returns the hex SHA-256 of the RFC 8785 canonical JSON form of o.
// Key insertion order never affects the result. Callers exclude fields from
// the hash by clearing them on a copy before calling (notably rootSha256).
func HashObject(o any) (string, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return "", errors.Wrap(err, "marshaling object")
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", errors.Wrap(err, "canonicalizing object")
	}
	return HashString(string(canonical)), nil
}

// CheckID derives the deterministic check identifier for a namespace and its
// canonical query string. Equal inputs always produce equal IDs; neither the
// clock nor any transport response participates.
func CheckID(namespace, canonicalQuery string) string {
	return fmt.Sprintf("chk.%s.%s", namespace, HashString(namespace+"\x00"+canonicalQuery)[:12])
}

// EvidenceID derives the evidence identifier for the seq-th evidence record
// backing the given check.
func EvidenceID(checkID string, seq int) string {
	tail := checkID
	for i := len(checkID) - 1; i >= 0; i-- {
		if checkID[i] == '.' {
			tail = checkID[i+1:]
			break
		}
	}
	return fmt.Sprintf("ev.%s.%d", tail, seq)
}
