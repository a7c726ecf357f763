// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns coloring decisions back into markup. It works
// on the original verse fragment byte-for-byte: the only change it
// ever makes is inserting red-letter span wrappers around text runs,
// so everything the page supplied survives untouched.
package render

import (
	stdhtml "html"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/pdiddy/redletter/internal/quote"
)

const (
	redOpen  = `<span class="woj-text" style="color: #cc0000;">`
	redClose = `</span>`

	// Entities are short; anything longer is treated as a bare ampersand.
	maxEntityLen = 32
)

// PlainText flattens an HTML fragment to its text content, decoding
// entities. This is the exact text the tokenizer sees, so span rune
// counts line up with the fragment walker in Recolor.
func PlainText(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// The x/net parser recovers from any real-world input; an error
		// here means a broken reader, which a string reader is not.
		return fragment
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return b.String()
}

// Recolor re-renders a verse fragment with red-letter wrappers. spans
// is the tokenization of the fragment's plain text; colors holds one
// decision per quotation span. With wholeVerse set the single decision
// covers narrative text as well (the whole-verse-implicit case).
//
// The walker advances through the fragment span by span, counting text
// runes and passing tags and entities through verbatim, so span
// boundaries land on exactly the characters the tokenizer classified.
func Recolor(fragment string, spans []quote.Span, colors []bool, wholeVerse bool) string {
	var out strings.Builder
	pos := 0
	qi := 0

	for _, sp := range spans {
		red := false
		if sp.Kind == quote.Quotation {
			if qi < len(colors) {
				red = colors[qi]
			}
			qi++
		} else if wholeVerse && len(colors) == 1 {
			red = colors[0]
		}
		pos = paintSegment(&out, fragment, pos, utf8.RuneCountInString(sp.Text), red)
	}

	// Trailing markup after the last text rune.
	out.WriteString(fragment[pos:])
	return out.String()
}

// paintSegment copies need text runes of frag starting at byte pos,
// wrapping contiguous text in a red span when red is set. Tags and
// quotation delimiters are emitted outside any wrapper; tags never
// count as text.
func paintSegment(out *strings.Builder, frag string, pos, need int, red bool) int {
	open := false
	closeWrap := func() {
		if open {
			out.WriteString(redClose)
			open = false
		}
	}

	for need > 0 && pos < len(frag) {
		if frag[pos] == '<' {
			closeWrap()
			end := strings.IndexByte(frag[pos:], '>')
			if end < 0 {
				// Unterminated tag: emit the rest as markup.
				out.WriteString(frag[pos:])
				return len(frag)
			}
			out.WriteString(frag[pos : pos+end+1])
			pos += end + 1
			continue
		}

		// Next logical rune, entity-aware: "&quot;" is one rune of text
		// content and may be a delimiter.
		raw := ""
		runes := 0
		var r rune
		if frag[pos] == '&' {
			limit := min(pos+maxEntityLen, len(frag))
			if semi := strings.IndexByte(frag[pos:limit], ';'); semi > 0 {
				raw = frag[pos : pos+semi+1]
				decoded := stdhtml.UnescapeString(raw)
				runes = utf8.RuneCountInString(decoded)
				r, _ = utf8.DecodeRuneInString(decoded)
			}
		}
		if raw == "" {
			var size int
			r, size = utf8.DecodeRuneInString(frag[pos:])
			raw = frag[pos : pos+size]
			runes = 1
		}

		if runes == 1 && quote.IsDelimiter(r) {
			closeWrap()
		} else if red && !open {
			out.WriteString(redOpen)
			open = true
		}
		out.WriteString(raw)
		pos += len(raw)
		need -= runes
	}

	closeWrap()
	return pos
}
