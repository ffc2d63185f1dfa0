// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package adapters holds the protocol shared by all namespace adapters:
// issue one transport call, classify the status code into the fixed
// taxonomy, and capture a content-hashed Evidence record with a repro
// recipe. Namespace packages own their URL templates and headers.
package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/markclear/markclear/internal/hashx"
	"github.com/markclear/markclear/internal/httpx"
	"github.com/markclear/markclear/pkg/clearance"
)

// Request describes one namespace check to perform.
type Request struct {
	Namespace clearance.Namespace
	System    string
	URL       string
	Headers   map[string]string
	Query     map[string]string
	FailCode  string
	RateCode  string
	// Claimability maps the HTTP status to a claimability verdict for
	// namespaces that support reservation; nil leaves it unset.
	Claimability func(httpStatus int) clearance.Claimability
	// RedactHeaders lists header names whose values are replaced by an
	// environment reference in the repro recipe (e.g. Authorization).
	RedactHeaders map[string]string
}

// Exchange performs the check. Transport failures never surface as an error:
// they degrade the Record to unknown/indicative with the adapter's fail code
// and an Evidence record documenting what was attempted.
func Exchange(ctx context.Context, client httpx.BasicClient, r Request, now clearance.Clock) clearance.Record {
	checkID := clearance.CheckID(r.Namespace, r.Query)
	observed := now.Stamp()
	ev := clearance.Evidence{
		ID:         hashx.EvidenceID(checkID, 0),
		Type:       clearance.EvidenceTypeHTTP,
		Source:     clearance.Source{System: r.System, URL: r.URL, Method: http.MethodGet},
		ObservedAt: observed,
		Repro:      []string{curl(r)},
	}
	check := clearance.Check{
		ID:          checkID,
		Namespace:   r.Namespace,
		Query:       r.Query,
		ObservedAt:  observed,
		EvidenceRef: ev.ID,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return fail(check, ev, r, err)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(check, ev, r, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(check, ev, r, err)
	}
	sum := sha256.Sum256(body)
	ev.SHA256 = hex.EncodeToString(sum[:])
	ev.Bytes = int64(len(body))

	switch {
	case resp.StatusCode == http.StatusOK:
		check.Status = clearance.StatusTaken
		check.Authority = clearance.AuthorityAuthoritative
	case resp.StatusCode == http.StatusNotFound:
		check.Status = clearance.StatusAvailable
		check.Authority = clearance.AuthorityAuthoritative
	case resp.StatusCode == http.StatusTooManyRequests:
		check.Status = clearance.StatusUnknown
		check.Authority = clearance.AuthorityIndicative
		check.Errors = append(check.Errors, clearance.Error{
			Code:    r.RateCode,
			Message: fmt.Sprintf("%s rate limited: %s", r.System, resp.Status),
		})
	default:
		check.Status = clearance.StatusUnknown
		check.Authority = clearance.AuthorityIndicative
	}
	if r.Claimability != nil {
		check.Claimability = r.Claimability(resp.StatusCode)
	}
	return clearance.Record{Check: check, Evidence: ev}
}

func fail(check clearance.Check, ev clearance.Evidence, r Request, err error) clearance.Record {
	check.Status = clearance.StatusUnknown
	check.Authority = clearance.AuthorityIndicative
	check.Errors = append(check.Errors, clearance.Error{Code: r.FailCode, Message: err.Error()})
	if r.Claimability != nil {
		check.Claimability = clearance.ClaimUnknown
	}
	ev.Notes = err.Error()
	return clearance.Record{Check: check, Evidence: ev}
}

// curl renders the shell command that reproduces the call byte-for-byte.
func curl(r Request) string {
	var b strings.Builder
	b.WriteString("curl -s")
	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := r.Headers[k]
		if redacted, ok := r.RedactHeaders[k]; ok {
			v = redacted
		}
		fmt.Fprintf(&b, " -H '%s: %s'", k, v)
	}
	fmt.Fprintf(&b, " '%s'", r.URL)
	return b.String()
}
