// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mask

import (
	"fmt"

	"github.com/pdiddy/redletter/internal/quote"
)

// FailReason identifies why a mask could not be transferred onto a
// target verse. Transfer failure is a defined output state ("skip
// coloring for this verse"), never an error that aborts sibling verses.
type FailReason string

const (
	// ReasonNone marks a successful transfer.
	ReasonNone FailReason = ""

	// ReasonCountMismatch: the target verse tokenized into a different
	// number of quotation spans than the mask has entries.
	ReasonCountMismatch FailReason = "count mismatch"

	// ReasonImplicitTarget: an explicit reference-side quotation lined
	// up with a target span whose quotation status was only inferred
	// from a verse boundary. Coloring such a span would guess across
	// unrelated delimiter runs.
	ReasonImplicitTarget FailReason = "explicit mask vs implicit target"
)

// TransferResult is the outcome of applying a reference mask to one
// target verse.
type TransferResult struct {
	// Colors holds one decision per target quotation span, in order.
	// Only meaningful when OK reports true.
	Colors []bool

	// WholeVerse is set when the single decision covers the entire verse
	// text (the implicit whole-verse reconciliation), not just its
	// quotation spans.
	WholeVerse bool

	// Reason is ReasonNone on success, otherwise the validation failure.
	Reason FailReason

	// Detail elaborates Reason for trace output.
	Detail string
}

// OK reports whether the transfer validated and Colors may be applied.
func (r TransferResult) OK() bool {
	return r.Reason == ReasonNone
}

// Transfer tokenizes the target verse's plain text and validates it
// against the reference mask. On success it returns per-span coloring
// decisions aligned 1:1 with the target's quotation spans; on failure
// it returns the reason and no coloring. Identical inputs always yield
// identical results.
func Transfer(targetPlainText string, m VerseMask) TransferResult {
	spans := quote.Tokenize(targetPlainText)
	quotes := quote.Quotations(spans)

	// A target verse with no quotations at all can still take a mask
	// when the reference side classified the whole verse as implicitly
	// direct speech: the single span then stands in for the verse.
	wholeVerse := false
	if len(quotes) == 0 && len(spans) == 1 &&
		len(m) == 1 && m[0].WholeVerseImplicit {
		quotes = spans
		wholeVerse = true
	}

	if len(quotes) != len(m) {
		return TransferResult{
			Reason: ReasonCountMismatch,
			Detail: fmt.Sprintf("%d quotation span(s) vs %d mask entr(ies)", len(quotes), len(m)),
		}
	}

	for i := range quotes {
		if !m[i].WholeVerseImplicit && quotes[i].ImplicitBoundary {
			return TransferResult{
				Reason: ReasonImplicitTarget,
				Detail: fmt.Sprintf("span %d crosses a verse boundary", i),
			}
		}
	}

	colors := make([]bool, len(m))
	for i, e := range m {
		colors[i] = e.DirectSpeech
	}
	return TransferResult{Colors: colors, WholeVerse: wholeVerse}
}
