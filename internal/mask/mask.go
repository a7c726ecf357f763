// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mask derives per-verse direct-speech masks from a reference
// edition and transfers them onto independently tokenized target
// editions. Like package quote it is pure computation: build once per
// reference verse, read from any number of goroutines.
package mask

import (
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/redletter/internal/quote"
)

// WholeVerseRatio is the fraction of a verse's normalized characters
// that must be covered by known direct-speech text before a verse with
// no delimited quotations is treated as entirely direct speech. The
// comparison is strict (> 0.9). Empirically tuned, not a domain
// invariant.
const WholeVerseRatio = 0.9

// Entry is the classification of one expected quotation span.
type Entry struct {
	// DirectSpeech reports whether the span's content appears in the
	// reference edition's marked direct-speech text.
	DirectSpeech bool `json:"direct_speech" yaml:"direct_speech"`

	// WholeVerseImplicit is set only on the single synthetic entry of a
	// verse that had no delimited quotations but was almost entirely
	// direct speech. At most one entry in a mask carries it, and then it
	// is the only entry.
	WholeVerseImplicit bool `json:"whole_verse_implicit" yaml:"whole_verse_implicit"`
}

// VerseMask is the ordered classification of a verse's quotation spans,
// left to right. It is built once from the reference edition and never
// mutated afterwards.
type VerseMask []Entry

// Build derives the mask for one reference verse. plainText is the
// verse's flattened text; directText is the concatenation of everything
// the reference markup marks as direct speech in that verse.
//
// Spans are classified by substring containment after normalization
// rather than exact equality: the two inputs come from independent
// flattening passes that may disagree on whitespace and trailing
// punctuation. An empty return means "no information", which callers
// treat as "apply no coloring".
func Build(plainText, directText string) VerseMask {
	normFull := quote.Normalize(plainText)
	normDirect := quote.Normalize(directText)

	quotes := quote.Quotations(quote.Tokenize(plainText))

	if len(quotes) == 0 {
		if normFull == "" {
			return nil
		}
		ratio := float64(utf8.RuneCountInString(normDirect)) / float64(utf8.RuneCountInString(normFull))
		if ratio > WholeVerseRatio {
			return VerseMask{{DirectSpeech: true, WholeVerseImplicit: true}}
		}
		return nil
	}

	m := make(VerseMask, 0, len(quotes))
	for _, q := range quotes {
		norm := quote.Normalize(q.Text)
		m = append(m, Entry{
			DirectSpeech: norm != "" && strings.Contains(normDirect, norm),
		})
	}
	return m
}
