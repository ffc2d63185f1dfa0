// Copyright 2026 The Markclear Authors
// SPDX-License-Identifier: Apache-2.0

// Package variants generates the finite, deterministically-ordered set of
// linguistic neighbors of a candidate mark that the collision radar probes.
package variants

import (
	"sort"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/unicode/norm"
)

// Category orders variants: categories appear in declaration order, values
// lexicographically within a category.
type Category string

const (
	CategoryNormalized Category = "normalized"
	CategoryTokenized  Category = "tokenized"
	CategoryPhonetic   Category = "phonetic"
	CategoryHomoglyph  Category = "homoglyph"
	CategoryEdit       Category = "edit_distance"
)

// Categories lists all categories in output order.
var Categories = []Category{CategoryNormalized, CategoryTokenized, CategoryPhonetic, CategoryHomoglyph, CategoryEdit}

// Variant is one generated neighbor of the candidate mark.
type Variant struct {
	Category Category `json:"category"`
	Value    string   `json:"value"`
}

// Options caps the open-ended categories.
type Options struct {
	MaxHomoglyph int
	MaxEdit      int
}

// DefaultOptions bounds homoglyph and edit-distance generation.
var DefaultOptions = Options{MaxHomoglyph: 24, MaxEdit: 64}

const editAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789-"

// confusables maps characters to their common lookalikes, including the
// Cyrillic and Greek homoglyphs used in typosquats.
var confusables = map[rune][]rune{
	'0': {'o'},
	'o': {'0', 'о', 'ο'}, // Cyrillic о, Greek omicron
	'1': {'l', 'i'},
	'l': {'1', 'i'},
	'i': {'1', 'l'},
	'a': {'а'}, // Cyrillic а
	'e': {'е'}, // Cyrillic е
	'p': {'р'}, // Cyrillic р
	'c': {'с'}, // Cyrillic с
	'x': {'х'}, // Cyrillic х
	'v': {'ν'}, // Greek nu
}

// Normalize lowercases, applies Unicode NFKC, strips whitespace, and
// collapses runs of '-' and '_' to a single '-'.
func Normalize(mark string) string {
	s := strings.ToLower(norm.NFKC.String(mark))
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
			}
			prevDash = true
		default:
			b.WriteRune(r)
			prevDash = false
		}
	}
	return b.String()
}

// Tokenize splits on non-alphanumeric runs.
func Tokenize(mark string) []string {
	return strings.FieldsFunc(strings.ToLower(norm.NFKC.String(mark)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Generate produces the ordered variant set for a candidate mark.
func Generate(mark string, opts Options) []Variant {
	if opts.MaxHomoglyph == 0 {
		opts.MaxHomoglyph = DefaultOptions.MaxHomoglyph
	}
	if opts.MaxEdit == 0 {
		opts.MaxEdit = DefaultOptions.MaxEdit
	}
	base := Normalize(mark)
	var out []Variant
	out = append(out, collect(CategoryNormalized, []string{base}, 0)...)
	out = append(out, collect(CategoryTokenized, tokenForms(mark), 0)...)
	out = append(out, collect(CategoryPhonetic, phoneticForms(base), 0)...)
	out = append(out, collect(CategoryHomoglyph, homoglyphForms(base), opts.MaxHomoglyph)...)
	out = append(out, collect(CategoryEdit, editForms(base), opts.MaxEdit)...)
	return out
}

// collect dedupes, sorts, and caps one category's values.
func collect(cat Category, values []string, limit int) []Variant {
	seen := make(map[string]bool, len(values))
	var uniq []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		uniq = append(uniq, v)
	}
	sort.Strings(uniq)
	if limit > 0 && len(uniq) > limit {
		uniq = uniq[:limit]
	}
	out := make([]Variant, 0, len(uniq))
	for _, v := range uniq {
		out = append(out, Variant{Category: cat, Value: v})
	}
	return out
}

func tokenForms(mark string) []string {
	tokens := Tokenize(mark)
	if len(tokens) == 0 {
		return nil
	}
	return []string{
		strings.Join(tokens, "-"),
		strings.Join(tokens, "_"),
		strings.Join(tokens, ""),
	}
}

func phoneticForms(base string) []string {
	primary, _ := matchr.DoubleMetaphone(base)
	if primary == "" {
		return nil
	}
	return []string{strings.ToLower(primary)}
}

func homoglyphForms(base string) []string {
	runes := []rune(base)
	var forms []string
	for i, r := range runes {
		for _, sub := range confusables[r] {
			v := make([]rune, len(runes))
			copy(v, runes)
			v[i] = sub
			forms = append(forms, string(v))
		}
	}
	// rn <-> m is the one multi-rune confusion worth probing.
	forms = append(forms, strings.Replace(base, "rn", "m", 1))
	forms = append(forms, strings.Replace(base, "m", "rn", 1))
	var out []string
	for _, f := range forms {
		if f != base {
			out = append(out, f)
		}
	}
	return out
}

// editForms enumerates every string at Damerau-Levenshtein distance 1 from
// base over the [a-z0-9-] alphabet.
func editForms(base string) []string {
	runes := []rune(base)
	var forms []string
	// deletions
	for i := range runes {
		forms = append(forms, string(runes[:i])+string(runes[i+1:]))
	}
	// transpositions
	for i := 0; i+1 < len(runes); i++ {
		v := make([]rune, len(runes))
		copy(v, runes)
		v[i], v[i+1] = v[i+1], v[i]
		forms = append(forms, string(v))
	}
	// substitutions
	for i := range runes {
		for _, c := range editAlphabet {
			if c == runes[i] {
				continue
			}
			v := make([]rune, len(runes))
			copy(v, runes)
			v[i] = c
			forms = append(forms, string(v))
		}
	}
	// insertions
	for i := 0; i <= len(runes); i++ {
		for _, c := range editAlphabet {
			forms = append(forms, string(runes[:i])+string(c)+string(runes[i:]))
		}
	}
	var out []string
	for _, f := range forms {
		if f != base && f != "" {
			out = append(out, f)
		}
	}
	return out
}
