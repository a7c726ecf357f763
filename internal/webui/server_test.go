// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/redletter/internal/gateway"
	"github.com/pdiddy/redletter/internal/passage"
	"github.com/pdiddy/redletter/pkg/types"
)

const refPage = `<html><body><div class="passage-content">
<span class="text"><sup class="versenum">12 </sup>Jesus spoke, <span class="woj">&#8220;I am the light of the world.&#8221;</span></span>
</div></body></html>`

const targetPage = `<html><body>
<div class="dropdown-display-text">Jean 8:12</div>
<div class="passage-text">
<span class="text"><sup class="versenum">12 </sup>J&eacute;sus dit : &#171;Je suis la lumi&egrave;re du monde.&#187;</span>
</div></body></html>`

func newUITestServer(t *testing.T) *httptest.Server {
	t.Helper()

	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("version") == "CEB" {
			w.Write([]byte(refPage))
			return
		}
		w.Write([]byte(targetPage))
	}))
	t.Cleanup(pages.Close)

	client := gateway.New(types.GatewayConfig{
		BaseURL:          pages.URL + "/",
		ReferenceEdition: "CEB",
	}, nil)
	ui := NewServer(passage.New(client, nil), nil)

	ts := httptest.NewServer(ui.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newUITestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHomeGetRendersForm(t *testing.T) {
	ts := newUITestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `name="passage"`)
	assert.Contains(t, body, `name="versions"`)
	// Both toggles default on.
	assert.Contains(t, body, `name="include_verses" checked`)
	assert.Contains(t, body, `name="red_letter" checked`)
	// No results section without a POST.
	assert.NotContains(t, body, `id="results-container"`)
}

func TestHomePostRendersResults(t *testing.T) {
	ts := newUITestServer(t)

	form := url.Values{
		"passage":    {"John 8:12"},
		"versions":   {"lsg"},
		"red_letter": {"on"},
	}
	resp, err := http.PostForm(ts.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, "LSG - Jean 8:12")
	// Colored markup must land unescaped.
	assert.Contains(t, body, `<span class="woj-text" style="color: #cc0000;">Je suis la lumière du monde.</span>`)
	// Verse numbers were unchecked.
	assert.NotContains(t, body, ">12</span>")
	assert.Contains(t, body, "Debug Log")
	// Red letters stay visible.
	assert.NotContains(t, body, `class="hide-red-letters"`)
}

func TestHomePostRedLetterOff(t *testing.T) {
	ts := newUITestServer(t)

	form := url.Values{
		"passage":        {"John 8:12"},
		"versions":       {"LSG"},
		"include_verses": {"on"},
	}
	resp, err := http.PostForm(ts.URL+"/", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := readBody(t, resp)
	assert.NotContains(t, body, `<span class="woj-text"`)
	assert.Contains(t, body, ">12</span>")
	assert.Contains(t, body, `class="hide-red-letters"`)
}

func TestSplitEditions(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"KOERV NIV", []string{"KOERV", "NIV"}},
		{"lsg, niv", []string{"LSG", "NIV"}},
		{"  niv  ", []string{"NIV"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitEditions(tt.in), "input %q", tt.in)
	}
}

func TestSplitPassages(t *testing.T) {
	got := SplitPassages("John 8:12, Luke 7:19-21 , ")
	assert.Equal(t, []string{"John 8:12", "Luke 7:19-21"}, got)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
