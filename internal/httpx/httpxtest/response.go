// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package httpxtest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

func Body(b string) io.ReadCloser {
	return io.NopCloser(bytes.NewReader([]byte(b)))
}

// Response builds a minimal response with the given status code and body.
func Response(code int, body string) *http.Response {
	return &http.Response{
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode: code,
		Body:       Body(body),
	}
}
