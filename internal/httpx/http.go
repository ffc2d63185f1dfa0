// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package httpx provides a simpler http.Client abstraction and derivative uses.
//
// The core never constructs a transport itself: every adapter receives a
// BasicClient, which is also the sole test seam.
package httpx

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// BasicClient is a simpler http.Client that only requires a Do method.
type BasicClient interface {
	Do(*http.Request) (*http.Response, error)
}

var _ BasicClient = http.DefaultClient

// WithUserAgent is a basic HTTP client that adds a User-Agent header.
type WithUserAgent struct {
	BasicClient
	UserAgent string
}

var _ BasicClient = &WithUserAgent{}

// Do adds the User-Agent header and sends the request.
func (c *WithUserAgent) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.UserAgent)
	return c.BasicClient.Do(req)
}

// WithBearerToken is a basic HTTP client that attaches an Authorization header.
// An empty token leaves the request untouched. The token is never logged.
type WithBearerToken struct {
	BasicClient
	Token string
}

var _ BasicClient = &WithBearerToken{}

// Do adds the Authorization header and sends the request.
func (c *WithBearerToken) Do(req *http.Request) (*http.Response, error) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return c.BasicClient.Do(req)
}

// WithTimeout is a basic HTTP client that bounds each call with a deadline.
// The caller's cancellation still applies; whichever fires first wins.
type WithTimeout struct {
	BasicClient
	Timeout time.Duration
}

var _ BasicClient = &WithTimeout{}

// Do sends the request under a per-call deadline.
func (c *WithTimeout) Do(req *http.Request) (*http.Response, error) {
	if c.Timeout <= 0 {
		return c.BasicClient.Do(req)
	}
	ctx, cancel := context.WithTimeout(req.Context(), c.Timeout)
	resp, err := c.BasicClient.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}
	// The deadline must outlive Do so the body remains readable.
	resp.Body = &cancelReadCloser{resp.Body, cancel}
	return resp, nil
}

type cancelReadCloser struct {
	body   io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Read(p []byte) (int, error) { return c.body.Read(p) }

func (c *cancelReadCloser) Close() error {
	defer c.cancel()
	return c.body.Close()
}

// RateLimitedClient is a BasicClient that paces requests with a token bucket.
type RateLimitedClient struct {
	BasicClient
	Limiter *rate.Limiter
}

var _ BasicClient = &RateLimitedClient{}

// Do waits for the limiter then sends the request.
func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.BasicClient.Do(req)
}
