// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package rdap checks domain registration via the rdap.org aggregator.
package rdap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/markclear/markclear/internal/httpx"
	"github.com/markclear/markclear/internal/urlx"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/adapters"
	"golang.org/x/net/idna"
)

var rdapURL = urlx.MustParse("https://rdap.org")

// Checker answers whether a fully-qualified domain is registered.
type Checker interface {
	CheckDomain(context.Context, string, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the rdap.org HTTP API.
// The transport must follow the aggregator's 302 redirects to the
// authoritative registry RDAP server.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckDomain reports the registration state of fqdn for candidateMark.
// Internationalized names are converted to punycode before querying.
func (c HTTPChecker) CheckDomain(ctx context.Context, candidateMark, fqdn string) (clearance.Record, error) {
	ascii, err := idna.Lookup.ToASCII(fqdn)
	if err != nil {
		ascii = fqdn
	}
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: clearance.NamespaceDomain,
		System:    "rdap.org",
		URL:       fmt.Sprintf("%s/domain/%s", rdapURL, ascii),
		Headers:   map[string]string{"Accept": "application/rdap+json"},
		Query:     map[string]string{"candidateMark": candidateMark, "value": fqdn},
		FailCode:  clearance.CodeDomainFail,
		RateCode:  clearance.CodeDomainRateLimited,
		Claimability: func(status int) clearance.Claimability {
			switch status {
			case http.StatusOK:
				return clearance.NotClaimable
			case http.StatusNotFound:
				return clearance.ClaimableNow
			default:
				return clearance.ClaimUnknown
			}
		},
	}, c.clock()), nil
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
