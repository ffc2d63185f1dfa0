// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package report renders the clearance packet and provides the escaping the
// HTML surfaces rely on.
package report

import "strings"

var htmlReplacements = map[rune]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#x27;",
	'`':  "&#x60;",
	'/':  "&#x2F;",
}

// EscapeHTML escapes every character with special meaning in HTML text,
// including backtick and slash.
func EscapeHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if rep, ok := htmlReplacements[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeAttr escapes like EscapeHTML and additionally drops control bytes
// below 0x20, which have no place in attribute values.
func EscapeAttr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 {
			continue
		}
		if rep, ok := htmlReplacements[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
