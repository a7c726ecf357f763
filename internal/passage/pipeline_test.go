// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package passage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redletter/internal/gateway"
	"github.com/pdiddy/redletter/pkg/types"
)

const refPage = `<html><body>
<div class="dropdown-display-text">John 8:12-16</div>
<div class="passage-content">
<h3>The Light of the World</h3>
<span class="text John-8-12"><sup class="versenum">12 </sup>Jesus spoke, <span class="woj">&#8220;I am the light of the world.&#8221;</span><sup class="footnote">[a]</sup></span>
<span class="text John-8-13"><sup class="versenum">13 </sup>The Pharisees said, &#8220;You testify about yourself.&#8221;</span>
<span class="text John-8-14"><sup class="versenum">14 </sup>He said, <span class="woj">&#8220;Go.&#8221;</span></span>
<span class="text John-8-15"><sup class="versenum">15 </sup><span class="woj">&#8220;Stay.&#8221;</span></span>
<span class="text John-8-16"><sup class="versenum">16 </sup><span class="woj">Follow me and live.</span></span>
</div></body></html>`

const targetPage = `<html><body>
<div class="dropdown-display-text">Jean 8:12-16</div>
<div class="passage-text">
<h3>La lumi&egrave;re du monde</h3>
<span class="text Jean-8-12"><sup class="versenum">12 </sup>J&eacute;sus dit : <i>&#171;Je suis la lumi&egrave;re du monde.&#187;</i></span>
<span class="text Jean-8-13"><sup class="versenum">13 </sup>Les pharisiens dirent : &#171;Tu te rends t&eacute;moignage.&#187;</span>
<span class="text Jean-8-14"><sup class="versenum">14 </sup>Il dit : &#171;Va.&#187; &#171;Encore.&#187;</span>
<span class="text Jean-8-15"><sup class="versenum">15 </sup><span class="woj">&#171;Reste.&#187;</span></span>
<span class="text Jean-8-16"><sup class="versenum">16 </sup>Suis-moi et vis.</span>
</div></body></html>`

const redOpen = `<span class="woj-text" style="color: #cc0000;">`

func newPassageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("version") {
		case "CEB":
			w.Write([]byte(refPage))
		case "LSG":
			w.Write([]byte(targetPage))
		default:
			http.Error(w, "unknown edition", http.StatusInternalServerError)
		}
	}))
}

func newTestPipeline(t *testing.T, baseURL string) *Pipeline {
	t.Helper()
	client := gateway.New(types.GatewayConfig{
		BaseURL:          baseURL + "/",
		ReferenceEdition: "CEB",
	}, nil)
	return New(client, nil)
}

func TestAnalyzeReference(t *testing.T) {
	ts := newPassageServer(t)
	defer ts.Close()

	p := newTestPipeline(t, ts.URL)
	tr := NewTrace(nil)

	masks, err := p.AnalyzeReference(context.Background(), "John 8:12-16", tr)
	require.NoError(t, err)

	require.Contains(t, masks, "12")
	require.Len(t, masks["12"], 1)
	assert.True(t, masks["12"][0].DirectSpeech)
	assert.False(t, masks["12"][0].WholeVerseImplicit)

	require.Contains(t, masks, "13")
	require.Len(t, masks["13"], 1)
	assert.False(t, masks["13"][0].DirectSpeech)

	require.Contains(t, masks, "16")
	require.Len(t, masks["16"], 1)
	assert.True(t, masks["16"][0].WholeVerseImplicit)

	lines := tr.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "[CEB 12] mask: [red]")
}

func TestFetchAllRedLetter(t *testing.T) {
	ts := newPassageServer(t)
	defer ts.Close()

	p := newTestPipeline(t, ts.URL)
	tr := NewTrace(nil)

	blocks, err := p.FetchAll(context.Background(), Request{
		Passages: []string{"John 8:12-16"},
		Editions: []string{"LSG"},
		Options:  Options{RedLetter: true},
	}, tr)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Passages, 1)

	rp := blocks[0].Passages[0]
	assert.Equal(t, "Jean 8:12-16", rp.Ref)
	assert.Equal(t, "LSG", rp.Edition)

	// Verse 12: single quotation colored, delimiters left outside the wrapper.
	assert.Contains(t, rp.HTML, "«"+redOpen+"Je suis la lumière du monde.</span>»")
	// Verse 13: reference says not direct speech.
	assert.Contains(t, rp.HTML, "«Tu te rends témoignage.»")
	assert.NotContains(t, rp.HTML, redOpen+"Tu te rends")
	// Verse 14: two quotations against a one-entry mask, left uncolored.
	assert.Contains(t, rp.HTML, "«Va.» «Encore.»")
	// Verse 15: native red letters survive with their restyled span.
	assert.Contains(t, rp.HTML, `data-keep="true">«Reste.»</span>`)
	// Verse 16: whole-verse mask wraps the full text.
	assert.Contains(t, rp.HTML, redOpen+"Suis-moi et vis.</span>")

	trace := strings.Join(tr.Lines(), "\n")
	assert.Contains(t, trace, "[LSG 14] skipped (count mismatch")
	assert.Contains(t, trace, "[LSG 15] native red letters")
	assert.Contains(t, trace, "[LSG 16] colored whole verse")
}

func TestFetchAllVerseNumbers(t *testing.T) {
	ts := newPassageServer(t)
	defer ts.Close()

	p := newTestPipeline(t, ts.URL)

	blocks, err := p.FetchAll(context.Background(), Request{
		Passages: []string{"John 8:12-16"},
		Editions: []string{"LSG"},
		Options:  Options{VerseNumbers: true},
	}, nil)
	require.NoError(t, err)

	html := blocks[0].Passages[0].HTML
	assert.Contains(t, html, ">12</span>")
	assert.Contains(t, html, ">16</span>")
	// Red letters were off.
	assert.NotContains(t, html, redOpen)
}

func TestFetchAllFetchErrorDegradesPerPassage(t *testing.T) {
	ts := newPassageServer(t)
	defer ts.Close()

	p := newTestPipeline(t, ts.URL)

	blocks, err := p.FetchAll(context.Background(), Request{
		Passages: []string{"John 8:12-16"},
		Editions: []string{"LSG", "NOPE"},
	}, nil)
	require.Error(t, err)
	require.Len(t, blocks, 2)

	assert.Contains(t, blocks[0].Passages[0].HTML, "Je suis la lumière du monde.")
	assert.Contains(t, blocks[1].Passages[0].HTML, "An error occurred")
	assert.Equal(t, "John 8:12-16", blocks[1].Passages[0].Ref)
}

func TestFetchAllAnalysisErrorStillRenders(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("version") == "CEB" {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(targetPage))
	}))
	defer target.Close()

	p := newTestPipeline(t, target.URL)

	blocks, err := p.FetchAll(context.Background(), Request{
		Passages: []string{"John 8:12-16"},
		Editions: []string{"LSG"},
		Options:  Options{RedLetter: true},
	}, nil)
	require.Error(t, err)
	require.Len(t, blocks, 1)

	// Target text renders uncolored when the reference fetch fails.
	html := blocks[0].Passages[0].HTML
	assert.Contains(t, html, "Je suis la lumière du monde.")
	assert.NotContains(t, html, redOpen+"Je suis")
}

func TestRenderRangeMask(t *testing.T) {
	ref := `<html><body><div class="passage-content">
<span class="text"><sup class="versenum">19 </sup>He said, <span class="woj">&#8220;Come.&#8221;</span></span>
<span class="text"><sup class="versenum">20 </sup>They wept.</span>
<span class="text"><sup class="versenum">21 </sup>He said, <span class="woj">&#8220;Rise.&#8221;</span></span>
</div></body></html>`
	tgt := `<html><body><div class="passage-text">
<span class="text"><sup class="versenum">19-21 </sup>Il dit : &#171;Viens.&#187; Il dit : &#171;L&egrave;ve-toi.&#187;</span>
</div></body></html>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("version") == "CEB" {
			w.Write([]byte(ref))
			return
		}
		w.Write([]byte(tgt))
	}))
	defer ts.Close()

	p := newTestPipeline(t, ts.URL)
	tr := NewTrace(nil)

	masks, err := p.AnalyzeReference(context.Background(), "Luke 7:19-21", tr)
	require.NoError(t, err)

	rp, err := p.Render(context.Background(), "Luke 7:19-21", "LSG", masks, Options{RedLetter: true}, tr)
	require.NoError(t, err)

	assert.Contains(t, rp.HTML, "«"+redOpen+"Viens.</span>»")
	assert.Contains(t, rp.HTML, "«"+redOpen+"Lève-toi.</span>»")
	assert.Contains(t, strings.Join(tr.Lines(), "\n"), "[LSG 19-21] combined range mask")
}

func TestNilTraceIsSafe(t *testing.T) {
	var tr *Trace
	tr.Printf("dropped %d", 1)
	assert.Nil(t, tr.Lines())
}
