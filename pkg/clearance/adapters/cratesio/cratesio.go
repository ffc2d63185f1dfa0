// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package cratesio checks crate name availability on crates.io.
package cratesio

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/markclear/markclear/internal/httpx"
	"github.com/markclear/markclear/internal/urlx"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/adapters"
)

var registryURL = urlx.MustParse("https://crates.io")

// Checker answers whether a crate name is taken on crates.io.
type Checker interface {
	CheckCrate(context.Context, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the crates.io HTTP API.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckCrate reports the availability of the given crate name.
func (c HTTPChecker) CheckCrate(ctx context.Context, name string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: clearance.NamespaceCrates,
		System:    "crates.io",
		URL:       fmt.Sprintf("%s/api/v1/crates/%s", registryURL, url.PathEscape(name)),
		Headers:   map[string]string{"Accept": "application/json"},
		Query:     map[string]string{"name": name},
		FailCode:  clearance.CodeCratesFail,
		RateCode:  clearance.CodeCratesRateLimited,
	}, c.clock()), nil
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
