// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package huggingface checks model and space name availability on the Hugging Face Hub.
package huggingface

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

var hubURL = urlx.MustParse("https://huggingface.co")

// Checker answers whether model and space slots are taken on huggingface.co.
type Checker interface {
	CheckModel(context.Context, string, string) (clearance.Record, error)
	CheckSpace(context.Context, string, string) (clearance.Record, error)
}

// HTTPChecker is a Checker implementation that uses the huggingface.co HTTP API.
type HTTPChecker struct {
	Client httpx.BasicClient
	Now    clearance.Clock
}

// CheckModel reports the availability of the given owner/name model slot.
func (c HTTPChecker) CheckModel(ctx context.Context, owner, name string) (clearance.Record, error) {
	return c.check(ctx, clearance.NamespaceHFModel, "models", owner, name), nil
}

// CheckSpace reports the availability of the given owner/name space slot.
func (c HTTPChecker) CheckSpace(ctx context.Context, owner, name string) (clearance.Record, error) {
	return c.check(ctx, clearance.NamespaceHFSpace, "spaces", owner, name), nil
}

func (c HTTPChecker) check(ctx context.Context, ns clearance.Namespace, kind, owner, name string) clearance.Record {
	return adapters.Exchange(ctx, c.Client, adapters.Request{
		Namespace: ns,
		System:    "huggingface.co",
		URL:       fmt.Sprintf("%s/api/%s/%s/%s", hubURL, kind, url.PathEscape(owner), url.PathEscape(name)),
		Headers:   map[string]string{"Accept": "application/json"},
		Query:     map[string]string{"name": name, "owner": owner},
		FailCode:  clearance.CodeHuggingFaceFail,
		RateCode:  clearance.CodeHuggingFaceRateLimited,
	}, c.clock())
}

func (c HTTPChecker) clock() clearance.Clock {
	if c.Now != nil {
		return c.Now
	}
	return time.Now
}

var _ Checker = HTTPChecker{}
