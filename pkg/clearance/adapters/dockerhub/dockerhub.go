// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package dockerhub checks repository name availability on Docker Hub.
package dockerhub

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

var hubURL = urlx.MustParse("https://hub.docker.com")

// Checker answers whether a namespace/name repository slot is taken on Docker Hub.
type Checker interface {
	CheckRepository(context.Context, string, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the hub.docker.com HTTP API.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckRepository reports the availability of the given repository slot.
func (c HTTPChecker) CheckRepository(ctx context.Context, namespace, name string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: clearance.NamespaceDockerHub,
		System:    "hub.docker.com",
		URL:       fmt.Sprintf("%s/v2/repositories/%s/%s", hubURL, url.PathEscape(namespace), url.PathEscape(name)),
		Headers:   map[string]string{"Accept": "application/json"},
		Query:     map[string]string{"name": name, "namespace": namespace},
		FailCode:  clearance.CodeDockerHubFail,
		RateCode:  clearance.CodeDockerHubRateLimited,
	}, c.clock()), nil
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
