// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package github checks org and repo name availability via the GitHub API.
package github

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

var apiURL = urlx.MustParse("https://api.github.com")

// Checker answers whether org and repo names are taken on github.com.
type Checker interface {
	CheckOrg(context.Context, string) (clearance.Record, error)
	CheckRepo(context.Context, string, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the api.github.com REST API.
// Token raises rate limits when set; it is attached as a bearer credential
// and never logged or reproduced verbatim.
type HTTPChecker struct {
	Client httpx.BasicClient
	Token  string
	Now    clearance.Clock
}

// CheckOrg reports the availability of the given organization name.
func (c HTTPChecker) CheckOrg(ctx context.Context, org string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace:     clearance.NamespaceGitHubOrg,
		System:        "api.github.com",
		URL:           fmt.Sprintf("%s/orgs/%s", apiURL, url.PathEscape(org)),
		Headers:       c.headers(),
		Query:         map[string]string{"org": org},
		FailCode:      clearance.CodeGitHubFail,
		RateCode:      clearance.CodeGitHubRateLimited,
		RedactHeaders: c.redactions(),
	}, c.clock()), nil
}

// CheckRepo reports the availability of the given owner/name repository slot.
func (c HTTPChecker) CheckRepo(ctx context.Context, owner, name string) (clearance.Record, error) {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace:     clearance.NamespaceGitHubRepo,
		System:        "api.github.com",
		URL:           fmt.Sprintf("%s/repos/%s/%s", apiURL, url.PathEscape(owner), url.PathEscape(name)),
		Headers:       c.headers(),
		Query:         map[string]string{"name": name, "owner": owner},
		FailCode:      clearance.CodeGitHubFail,
		RateCode:      clearance.CodeGitHubRateLimited,
		RedactHeaders: c.redactions(),
	}, c.clock()), nil
}

func (c HTTPChecker) headers() map[string]string {
	h := map[string]string{"Accept": "application/vnd.github+json"}
	if c.Token != "" {
		h["Authorization"] = "Bearer " + c.Token
	}
	return h
}

func (c HTTPChecker) redactions() map[string]string {
	return map[string]string{"Authorization": "Bearer $GITHUB_TOKEN"}
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
