// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package pypi

import (
	"context"
	"testing"
	"time"

	"github.com/markclear/markclear/internal/httpx/httpxtest"
	"github.com/markclear/markclear/pkg/clearance"
	"github.com/pkg/errors"
)

var testClock = clearance.Clock(func() time.Time {
	return time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
})

func TestCheckProjectTaken(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls: []httpxtest.Call{{
			URL:      "https://pypi.org/pypi/requests/json",
			Response: httpxtest.Response(200, `{"info":{"name":"requests"}}`),
		}},
		URLValidator: httpxtest.NewURLValidator(t),
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckProject(context.Background(), "requests")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Check.Namespace != clearance.NamespacePyPI {
		t.Fatalf("namespace = %s", rec.Check.Namespace)
	}
	if rec.Check.Status != clearance.StatusTaken || rec.Check.Authority != clearance.AuthorityAuthoritative {
		t.Fatalf("got %s/%s, want taken/authoritative", rec.Check.Status, rec.Check.Authority)
	}
}

func TestCheckProjectAvailable(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls:             []httpxtest.Call{{Response: httpxtest.Response(404, "")}},
		SkipURLValidation: true,
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckProject(context.Background(), "surely-unclaimed")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Check.Status != clearance.StatusAvailable {
		t.Fatalf("status = %s, want available", rec.Check.Status)
	}
}

func TestCheckProjectTransportFailure(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls:             []httpxtest.Call{{Error: errors.New("timeout")}},
		SkipURLValidation: true,
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckProject(context.Background(), "whatever")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Check.Errors) != 1 || rec.Check.Errors[0].Code != clearance.CodePyPIFail {
		t.Fatalf("errors = %+v, want %s", rec.Check.Errors, clearance.CodePyPIFail)
	}
}
