// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package pypi checks name availability on the PyPI registry.
package pypi

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

var registryURL = urlx.MustParse("https://pypi.org")

// Checker answers whether a project name is taken on pypi.org.
type Checker interface {
	CheckProject(context.Context, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the pypi.org HTTP API.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckProject reports the availability of the given project name.
func (c HTTPChecker) CheckProject(ctx context.Context, pkg string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: clearance.NamespacePyPI,
		System:    "pypi.org",
		URL:       fmt.Sprintf("%s/pypi/%s/json", registryURL, url.PathEscape(pkg)),
		Headers:   map[string]string{"Accept": "application/json"},
		Query:     map[string]string{"name": pkg},
		FailCode:  clearance.CodePyPIFail,
		RateCode:  clearance.CodePyPIRateLimited,
	}, c.clock()), nil
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
