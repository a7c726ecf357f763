// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RenderedPassage is one passage in one edition, ready for display.
type RenderedPassage struct {
	// Ref is the display reference reported by the source page (falls
	// back to the requested passage when the page carries none).
	Ref string `json:"ref" yaml:"ref"`

	// Edition is the translation code (e.g. "NIV").
	Edition string `json:"edition" yaml:"edition"`

	// HTML is the recolored passage markup. Safe to embed: it is built
	// from the source page's text content plus our own span wrappers.
	HTML string `json:"html" yaml:"html"`
}

// EditionBlock groups the rendered passages of one edition for display.
type EditionBlock struct {
	Edition  string            `json:"edition" yaml:"edition"`
	Passages []RenderedPassage `json:"passages" yaml:"passages"`
}
