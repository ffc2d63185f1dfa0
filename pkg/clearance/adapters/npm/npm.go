// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package npm checks name availability on the npm registry.
package npm

import (
	"context"
	"time"

	"github.com/markclear/markclear/internal/httpx"
	"github.com/markclear/markclear/internal/urlx"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/adapters"
)

var registryURL = urlx.MustParse("https://registry.npmjs.org")

// Checker answers whether a package name is taken on npmjs.org.
type Checker interface {
	CheckPackage(context.Context, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the npmjs.org HTTP API.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckPackage reports the availability of the given package name.
func (c HTTPChecker) CheckPackage(ctx context.Context, pkg string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: clearance.NamespaceNPM,
		System:    "registry.npmjs.org",
		URL:       urlx.Resolve(registryURL, pkg),
		Headers:   map[string]string{"Accept": "application/json"},
		Query:     map[string]string{"name": pkg},
		FailCode:  clearance.CodeNPMFail,
		RateCode:  clearance.CodeNPMRateLimited,
	}, c.clock()), nil
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
