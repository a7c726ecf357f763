// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"testing"

	"github.com/pdiddy/redletter/internal/quote"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no markup", "Jesus wept.", "Jesus wept."},
		{"tags stripped", `He said <b>to them</b>, “Come.”`, "He said to them, “Come.”"},
		{"entities decoded", "bread &amp; wine", "bread & wine"},
		{"nested spans", `<span class="woj-text">“I am.”</span> he said`, "“I am.” he said"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func recolorFragment(fragment string, colors []bool, wholeVerse bool) string {
	spans := quote.Tokenize(PlainText(fragment))
	return Recolor(fragment, spans, colors, wholeVerse)
}

func TestRecolorWrapsQuotation(t *testing.T) {
	got := recolorFragment("Jésus dit : “Suis-moi.” Et il le suivit.", []bool{true}, false)
	want := `Jésus dit : “<span class="woj-text" style="color: #cc0000;">Suis-moi.</span>” Et il le suivit.`

	if got != want {
		t.Errorf("Recolor = %q\nwant      %q", got, want)
	}
}

func TestRecolorDelimitersStayOutsideWrapper(t *testing.T) {
	got := recolorFragment("“Oui.”", []bool{true}, false)
	if strings.Contains(got, redOpen+"“") || strings.Contains(got, "”"+redClose) {
		t.Errorf("delimiters wrapped in red span: %q", got)
	}
}

func TestRecolorLeavesNonRedAlone(t *testing.T) {
	in := "Ils crièrent : “Crucifie-le !” encore."
	got := recolorFragment(in, []bool{false}, false)
	if got != in {
		t.Errorf("Recolor changed a non-red fragment: %q", got)
	}
}

func TestRecolorMixedDecisions(t *testing.T) {
	got := recolorFragment("“Qui suis-je ?” Pierre dit : “Le Messie.”", []bool{true, false}, false)
	if !strings.Contains(got, `<span class="woj-text" style="color: #cc0000;">Qui suis-je ?</span>`) {
		t.Errorf("first quotation not reddened: %q", got)
	}
	if strings.Contains(got, `<span class="woj-text" style="color: #cc0000;">Le Messie.</span>`) {
		t.Errorf("second quotation reddened: %q", got)
	}
}

func TestRecolorWholeVerse(t *testing.T) {
	got := recolorFragment("Aimez-vous les uns les autres.", []bool{true}, true)
	want := redOpen + "Aimez-vous les uns les autres." + redClose
	if got != want {
		t.Errorf("Recolor = %q, want %q", got, want)
	}
}

func TestRecolorPassesTagsThrough(t *testing.T) {
	in := `Il dit : “Venez <i>tous</i> à moi.”`
	got := recolorFragment(in, []bool{true}, false)

	if !strings.Contains(got, "<i>") || !strings.Contains(got, "</i>") {
		t.Fatalf("tags lost: %q", got)
	}
	if strings.Contains(got, redOpen+"<i>") {
		t.Errorf("tag wrapped in red span: %q", got)
	}
	// The text around and inside the tag is still red.
	if !strings.Contains(got, redOpen+"Venez "+redClose) {
		t.Errorf("text before tag not wrapped: %q", got)
	}
	if !strings.Contains(got, redOpen+"tous"+redClose) {
		t.Errorf("text inside tag not wrapped: %q", got)
	}
}

func TestRecolorCountsEntitiesAsOneRune(t *testing.T) {
	in := "“pain &amp; vin” dit-il."
	got := recolorFragment(in, []bool{true}, false)
	if !strings.Contains(got, "&amp;") {
		t.Fatalf("entity rewritten: %q", got)
	}
	if !strings.Contains(got, `<span class="woj-text" style="color: #cc0000;">pain &amp; vin</span>`) {
		t.Errorf("entity segment mis-aligned: %q", got)
	}
}

func TestRecolorPlainTextRoundTrip(t *testing.T) {
	// Stripping the inserted wrappers must give back the original
	// fragment, whatever the decisions.
	fragments := []string{
		"“Un” et “deux” et du texte.",
		`avec <i data-keep="true">“natif”</i> dedans`,
		"sans aucune citation",
	}
	for _, in := range fragments {
		spans := quote.Tokenize(PlainText(in))
		colors := make([]bool, len(quote.Quotations(spans)))
		for i := range colors {
			colors[i] = true
		}
		got := Recolor(in, spans, colors, false)
		stripped := strings.ReplaceAll(got, redOpen, "")
		stripped = strings.ReplaceAll(stripped, redClose, "")
		if stripped != in {
			t.Errorf("round trip failed for %q:\n got %q", in, stripped)
		}
	}
}

func TestVerseNumberHTML(t *testing.T) {
	if got := VerseNumberHTML("", false); got != "" {
		t.Errorf("empty number rendered: %q", got)
	}
	v := VerseNumberHTML("12", false)
	if !strings.Contains(v, ">12</span>") || !strings.Contains(v, "0.75em") {
		t.Errorf("verse number = %q", v)
	}
	ch := VerseNumberHTML("8", true)
	if !strings.Contains(ch, "1.5em") {
		t.Errorf("chapter number = %q", ch)
	}
}

func TestTidyWhitespace(t *testing.T) {
	in := "un \ndeux\n trois\n\n\n\nquatre  cinq"
	want := "un\ndeux\ntrois\n\nquatre cinq"
	if got := TidyWhitespace(in); got != want {
		t.Errorf("TidyWhitespace = %q, want %q", got, want)
	}
}
