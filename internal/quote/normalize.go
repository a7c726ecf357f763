// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quote segments verse text into narrative and quotation spans.
// It is pure string analysis: no I/O, no package state, safe for
// concurrent use.
package quote

import (
	"strings"
	"unicode"
)

// Normalize strips every rune that is not a letter or digit and
// lower-cases the remainder. It is used for fuzzy containment checks
// between two independently flattened renderings of the same verse,
// never for span boundary decisions.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
