// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// Compiled selectors for the passage page. The vendor wraps each
// verse's text in span.text elements inside a passage container;
// "words of Jesus" carry the woj class in editions with native red
// letters.
var (
	containerExpr = xpath.MustCompile(
		`//div[contains(concat(' ', normalize-space(@class), ' '), ' passage-content ')]` +
			` | //div[contains(concat(' ', normalize-space(@class), ' '), ' passage-text ')]`)
	pieceExpr = xpath.MustCompile(
		`.//h3 | .//h4 | .//span[contains(concat(' ', normalize-space(@class), ' '), ' text ')]`)
	refExpr = xpath.MustCompile(
		`//div[contains(concat(' ', normalize-space(@class), ' '), ' dropdown-display-text ')]`)
)

// Classes stripped out of verse content before any text or markup is
// extracted.
var junkClasses = []string{"footnote", "crossreference", "footnotes", "crossrefs", "bibleref", "publisher-info-bottom"}

// Classes that label a verse or chapter number tag.
var verseNumClasses = []string{"versenum", "chapternum", "v-num"}

// ReferenceVerse is one verse of the reference edition: its flattened
// text and the concatenation of all text its markup marks as direct
// speech.
type ReferenceVerse struct {
	Label      string
	PlainText  string
	DirectText string
}

// TargetVerse is one verse of a target edition, keeping enough of the
// original markup to re-render it after coloring decisions come back.
type TargetVerse struct {
	Label string

	// HTML is the verse's inner markup with footnotes and
	// cross-references stripped, the number tag removed, and all other
	// tags unwrapped except native red-letter spans.
	HTML string

	// NumText is the displayed verse (or chapter) number.
	NumText string

	// ChapterNum marks the number as a chapter number, which renders
	// larger than a verse number.
	ChapterNum bool

	// HasNativeRed is set when the edition marks direct speech itself;
	// such verses are never recolored.
	HasNativeRed bool
}

// Piece is one element of a passage's reading order: a section header
// gap or a verse reference.
type Piece struct {
	Header bool
	Label  string
}

// TargetPassage is the extraction result for a target edition.
type TargetPassage struct {
	// Ref is the display reference from the page, if present.
	Ref string

	// Pieces lists headers and verse labels in document order. A verse
	// label appears once, at its first piece.
	Pieces []Piece

	// Verses maps labels to accumulated verse content.
	Verses map[string]*TargetVerse
}

// passageContainer locates the passage body, preferring
// passage-content over the older passage-text layout.
func passageContainer(doc *html.Node) (*html.Node, error) {
	if n := htmlquery.QuerySelector(doc, containerExpr); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("no passage container in page")
}

// DisplayRef returns the page's own rendering of the passage reference,
// or "" when the page has none.
func DisplayRef(doc *html.Node) string {
	if n := htmlquery.QuerySelector(doc, refExpr); n != nil {
		return strings.TrimSpace(htmlquery.InnerText(n))
	}
	return ""
}

// stripJunk removes footnote and cross-reference nodes below n.
func stripJunk(n *html.Node) {
	descendants(n, func(c *html.Node) {
		for _, class := range junkClasses {
			if hasClass(c, class) {
				removeNode(c)
				return
			}
		}
	})
}

// verseNumNode finds the verse/chapter number tag inside a verse span.
func verseNumNode(n *html.Node) *html.Node {
	var found *html.Node
	descendants(n, func(c *html.Node) {
		if found != nil {
			return
		}
		for _, class := range verseNumClasses {
			if hasClass(c, class) {
				found = c
				return
			}
		}
	})
	return found
}

// ExtractReference produces per-verse plain text and direct-speech text
// for the reference edition. Verse spans without their own number tag
// continue the preceding verse; content before any number tag is
// dropped, matching the page's own reading order.
func ExtractReference(doc *html.Node) (map[string]ReferenceVerse, error) {
	container, err := passageContainer(doc)
	if err != nil {
		return nil, err
	}

	verses := make(map[string]ReferenceVerse)
	current := ""

	for _, span := range htmlquery.QuerySelectorAll(container, pieceExpr) {
		if span.Data != "span" || hasAncestor(span, "h3", "h4") {
			continue
		}

		stripJunk(span)

		if num := verseNumNode(span); num != nil {
			current = strings.TrimSpace(htmlquery.InnerText(num))
			removeNode(num)
		} else if current == "" {
			continue
		}

		v := verses[current]
		v.Label = current
		if v.PlainText != "" {
			v.PlainText += " "
		}
		v.PlainText += htmlquery.InnerText(span)
		descendants(span, func(c *html.Node) {
			if hasClass(c, "woj") {
				v.DirectText += htmlquery.InnerText(c)
				removeNode(c) // avoid counting nested woj spans twice
			}
		})
		verses[current] = v
	}

	return verses, nil
}

// ExtractTarget produces the renderable verse pieces of a target
// edition. Native red-letter spans are preserved (restyled inline so
// the markup survives copy/paste); every other tag is unwrapped.
func ExtractTarget(doc *html.Node) (*TargetPassage, error) {
	container, err := passageContainer(doc)
	if err != nil {
		return nil, err
	}

	p := &TargetPassage{
		Ref:    DisplayRef(doc),
		Verses: make(map[string]*TargetVerse),
	}
	current := ""

	for _, node := range htmlquery.QuerySelectorAll(container, pieceExpr) {
		if node.Data == "h3" || node.Data == "h4" {
			p.Pieces = append(p.Pieces, Piece{Header: true})
			continue
		}
		if hasAncestor(node, "h3", "h4") {
			continue
		}

		stripJunk(node)

		hasNative := false
		descendants(node, func(c *html.Node) {
			if hasClass(c, "woj") {
				setAttr(c, "class", "woj-text")
				setAttr(c, "style", "color: #cc0000;")
				setAttr(c, "data-keep", "true")
				hasNative = true
			}
		})

		numText := ""
		chapterNum := false
		if num := verseNumNode(node); num != nil {
			current = strings.TrimSpace(htmlquery.InnerText(num))
			numText = current
			chapterNum = hasClass(num, "chapternum")
			removeNode(num)
		} else if current == "" {
			continue
		}

		// Keep only native red-letter spans as markup; everything else
		// flattens to text so the recolorer sees the same delimiter
		// stream the tokenizer does.
		descendants(node, func(c *html.Node) {
			if !hasAttr(c, "data-keep") {
				unwrapNode(c)
			}
		})

		content := strings.TrimSpace(innerHTML(node))
		if content == "" {
			continue
		}

		v, ok := p.Verses[current]
		if !ok {
			v = &TargetVerse{Label: current}
			p.Verses[current] = v
		}
		if v.HTML != "" {
			v.HTML += " "
		}
		v.HTML += content
		if numText != "" && v.NumText == "" {
			v.NumText = numText
			v.ChapterNum = chapterNum
		}
		if hasNative {
			v.HasNativeRed = true
		}

		if n := len(p.Pieces); n == 0 || p.Pieces[n-1].Label != current || p.Pieces[n-1].Header {
			p.Pieces = append(p.Pieces, Piece{Label: current})
		}
	}

	return p, nil
}
