// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quote

import "strings"

// SpanKind classifies a span as ordinary narration or quoted speech.
type SpanKind int

const (
	Narrative SpanKind = iota
	Quotation
)

// String returns the kind name for diagnostics.
func (k SpanKind) String() string {
	if k == Quotation {
		return "quotation"
	}
	return "narrative"
}

// Span is a maximal contiguous substring of a verse, classified during
// tokenization. Delimiter characters are retained inside Text, so
// concatenating the spans of a verse in order reproduces the input
// exactly.
type Span struct {
	Text string
	Kind SpanKind

	// ImplicitBoundary marks a quotation span whose status was inferred
	// from context rather than a matched delimiter pair: the text began
	// inside a quotation opened in an earlier verse, or ended with the
	// quotation still open.
	ImplicitBoundary bool
}

// Recognized delimiters. The straight double quote is ambiguous (same
// glyph opens and closes) and is handled as a state toggle.
const (
	openers       = "“„「«"
	closers       = "”」»"
	straightQuote = '"'
)

// Delimiters contains every quotation delimiter the tokenizer
// recognizes, openers and closers plus the ambiguous straight quote.
const Delimiters = openers + closers + string(straightQuote)

// IsOpener reports whether r unambiguously opens a quotation.
func IsOpener(r rune) bool { return strings.ContainsRune(openers, r) }

// IsCloser reports whether r unambiguously closes a quotation.
func IsCloser(r rune) bool { return strings.ContainsRune(closers, r) }

// IsDelimiter reports whether r is a recognized quotation delimiter.
func IsDelimiter(r rune) bool {
	return IsOpener(r) || IsCloser(r) || r == straightQuote
}

// InitialState reports whether s logically begins inside a quotation.
// The first unambiguous delimiter decides: a closer means the text
// starts mid-quotation (implicit open), an opener means it starts in
// narration. Straight quotes are skipped because their role cannot be
// determined by shape. With no unambiguous delimiter at all the text
// starts in narration.
func InitialState(s string) bool {
	for _, r := range s {
		if IsCloser(r) {
			return true
		}
		if IsOpener(r) {
			return false
		}
	}
	return false
}

// Tokenize splits s into an ordered sequence of spans that strictly
// alternate between Narrative and Quotation. Every input, including the
// empty string, yields a well-defined (possibly empty) sequence; there
// are no failure modes.
func Tokenize(s string) []Span {
	if s == "" {
		return nil
	}

	inQuote := InitialState(s)
	// While true, the current quotation was opened before this text
	// began; the next quotation span flushed carries the implicit flag.
	implicitOpen := inQuote

	var spans []Span
	var buf strings.Builder

	flush := func(kind SpanKind, implicit bool) {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, Span{Text: buf.String(), Kind: kind, ImplicitBoundary: implicit})
		buf.Reset()
	}

	// closeQuote ends the current quotation with r as its final rune. A
	// closer with no accumulated content yet (the verse opened directly
	// on a closing mark) does not end anything; the mark belongs to the
	// quotation that is still being read.
	closeQuote := func(r rune) {
		if buf.Len() == 0 {
			buf.WriteRune(r)
			return
		}
		buf.WriteRune(r)
		flush(Quotation, implicitOpen)
		implicitOpen = false
		inQuote = false
	}

	for _, r := range s {
		switch {
		case IsOpener(r):
			if !inQuote {
				flush(Narrative, false)
				inQuote = true
			}
			buf.WriteRune(r)

		case IsCloser(r):
			if inQuote {
				closeQuote(r)
			} else {
				buf.WriteRune(r)
			}

		case r == straightQuote:
			if inQuote {
				closeQuote(r)
			} else {
				flush(Narrative, false)
				inQuote = true
				buf.WriteRune(r)
			}

		default:
			buf.WriteRune(r)
		}
	}

	// Trailing text: a quotation left open at the end of the verse is an
	// implicit close (it continues in the next verse).
	if inQuote {
		flush(Quotation, true)
	} else {
		flush(Narrative, false)
	}

	return merge(spans)
}

// merge collapses consecutive spans of the same kind into one so the
// sequence strictly alternates. Back-to-back quotations (no narration
// between the closing and opening marks) become a single span carrying
// either part's implicit flag.
func merge(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.Kind == last.Kind {
			last.Text += sp.Text
			last.ImplicitBoundary = last.ImplicitBoundary || sp.ImplicitBoundary
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Quotations filters spans down to the quotation spans, preserving
// order.
func Quotations(spans []Span) []Span {
	var out []Span
	for _, sp := range spans {
		if sp.Kind == Quotation {
			out = append(out, sp)
		}
	}
	return out
}
