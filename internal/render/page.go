// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	stdhtml "html"
	"regexp"
	"strings"
)

const (
	verseNumStyle   = "color: #999; font-size: 0.75em; font-weight: bold; margin-right: 3px;"
	chapterNumStyle = "color: #999; font-size: 1.5em; font-weight: bold; margin-right: 5px;"
)

// HeaderGap separates passage sections where the page had a heading.
const HeaderGap = "\n\n"

// VerseNumberHTML renders a verse or chapter number tag the way the
// output page displays it.
func VerseNumberHTML(num string, chapter bool) string {
	if num == "" {
		return ""
	}
	style := verseNumStyle
	if chapter {
		style = chapterNumStyle
	}
	return fmt.Sprintf(`<span style="%s">%s</span>`, style, stdhtml.EscapeString(num))
}

var (
	spaceBeforeNewline = regexp.MustCompile(` \n`)
	spaceAfterNewline  = regexp.MustCompile(`\n `)
	manyNewlines       = regexp.MustCompile(`\n{3,}`)
	manySpaces         = regexp.MustCompile(` {2,}`)
)

// TidyWhitespace collapses the spacing artifacts of joining verse
// pieces: spaces hugging newlines, runs of blank lines, doubled
// spaces.
func TidyWhitespace(s string) string {
	s = spaceBeforeNewline.ReplaceAllString(s, "\n")
	s = spaceAfterNewline.ReplaceAllString(s, "\n")
	s = manyNewlines.ReplaceAllString(s, "\n\n")
	s = manySpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
