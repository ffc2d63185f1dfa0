// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"fmt"
	"io"

	"github.com/markclear/markclear/pkg/clearance"
	"github.com/markclear/markclear/pkg/clearance/opinion"
	"github.com/markclear/markclear/pkg/clearance/radar"
)

// WriteMarkdown renders the clearance packet: verdict, score breakdown,
// per-namespace checks with their evidence hashes, and near-collisions.
// Write failures carry COE.RENDER.WRITE_FAIL.
func WriteMarkdown(w io.Writer, mark string, op opinion.Opinion, records []clearance.Record, hits []radar.Hit) error {
	write := func(format string, args ...any) error {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			return clearance.Error{Code: clearance.CodeRenderWriteFail, Message: err.Error()}
		}
		return nil
	}
	if err := write("# Clearance opinion: %s\n\n**%s** (score %d/100)\n\n%s\n\n", mark, op.Tier, op.Score, op.Rationale); err != nil {
		return err
	}
	if err := write("## Breakdown\n\n| Dimension | Weight | Value | Contribution |\n|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, e := range op.Breakdown {
		if err := write("| %s | %.2f | %.2f | %.1f |\n", e.Dimension, e.Weight, e.Value, e.Contribution); err != nil {
			return err
		}
	}
	if err := write("\n## Checks\n\n| Namespace | Query | Status | Authority | Evidence |\n|---|---|---|---|---|\n"); err != nil {
		return err
	}
	for _, r := range records {
		sha := r.Evidence.SHA256
		if sha == "" {
			sha = "(no response)"
		} else {
			sha = sha[:12]
		}
		if err := write("| %s | %s | %s | %s | %s |\n",
			r.Check.Namespace, clearance.CanonicalQuery(r.Check.Query), r.Check.Status, r.Check.Authority, sha); err != nil {
			return err
		}
	}
	if len(hits) > 0 {
		if err := write("\n## Near-collisions\n\n| Variant | Category | Namespace | Similarity |\n|---|---|---|---|\n"); err != nil {
			return err
		}
		for _, h := range hits {
			if err := write("| %s | %s | %s | %.2f |\n", h.Variant.Value, h.Variant.Category, h.Record.Check.Namespace, h.Similarity); err != nil {
				return err
			}
		}
	}
	return write("\nThis is an engineering opinion, not legal advice.\n")
}
