// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package huggingface

import (
	"context"
	"testing"
	"time"

	"github.com/markclear/markclear/internal/httpx/httpxtest"
	"github.com/markclear/markclear/pkg/clearance"
)

var testClock = clearance.Clock(func() time.Time {
	return time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
})

func TestCheckModelTaken(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls: []httpxtest.Call{{
			URL:      "https://huggingface.co/api/models/acme/widget",
			Response: httpxtest.Response(200, `{"modelId":"acme/widget"}`),
		}},
		URLValidator: httpxtest.NewURLValidator(t),
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckModel(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Check.Namespace != clearance.NamespaceHFModel {
		t.Fatalf("namespace = %s", rec.Check.Namespace)
	}
	if rec.Check.Status != clearance.StatusTaken {
		t.Fatalf("status = %s, want taken", rec.Check.Status)
	}
}

func TestCheckSpaceAvailable(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls: []httpxtest.Call{{
			URL:      "https://huggingface.co/api/spaces/acme/widget",
			Response: httpxtest.Response(404, ""),
		}},
		URLValidator: httpxtest.NewURLValidator(t),
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckSpace(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Check.Namespace != clearance.NamespaceHFSpace {
		t.Fatalf("namespace = %s", rec.Check.Namespace)
	}
	if rec.Check.Status != clearance.StatusAvailable {
		t.Fatalf("status = %s, want available", rec.Check.Status)
	}
}

func TestModelAndSpaceIdentitiesDiffer(t *testing.T) {
	newChecker := func() HTTPChecker {
		return HTTPChecker{Client: &httpxtest.MockClient{
			Calls:             []httpxtest.Call{{Response: httpxtest.Response(404, "")}},
			SkipURLValidation: true,
		}, Now: testClock}
	}
	model, err := newChecker().CheckModel(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatal(err)
	}
	space, err := newChecker().CheckSpace(context.Background(), "acme", "widget")
	if err != nil {
		t.Fatal(err)
	}
	if model.Check.ID == space.Check.ID {
		t.Fatal("model and space checks share an id")
	}
}

func TestCheckModelRateLimited(t *testing.T) {
	client := &httpxtest.MockClient{
		Calls:             []httpxtest.Call{{Response: httpxtest.Response(429, "")}},
		SkipURLValidation: true,
	}
	rec, err := HTTPChecker{Client: client, Now: testClock}.CheckModel(context.Background(), "acme", "busy")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Check.Errors) != 1 || rec.Check.Errors[0].Code != clearance.CodeHuggingFaceRateLimited {
		t.Fatalf("errors = %+v, want %s", rec.Check.Errors, clearance.CodeHuggingFaceRateLimited)
	}
}
