// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package urlx provides helpers for building adapter request URLs.
package urlx

import (
	"net/url"
	"strings"
)

// MustParse will call url.Parse and panic if there is an error, returning on success.
func MustParse(rawURL string) *url.URL {
	if u, err := url.Parse(rawURL); err != nil {
		panic(err)
	} else {
		return u
	}
}

// Resolve joins base with URL-encoded path segments.
// Each segment is escaped individually so names like "@scope/pkg" survive intact.
func Resolve(base *url.URL, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base.String(), "/"))
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
