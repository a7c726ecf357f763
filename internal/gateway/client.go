// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gateway fetches passage pages from BibleGateway and extracts
// per-verse text from their markup. It is the only package that talks
// to the network; everything it hands to the analysis core is plain
// strings.
package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/pdiddy/redletter/internal/httputil"
	"github.com/pdiddy/redletter/internal/store"
	"github.com/pdiddy/redletter/pkg/types"
)

const (
	defaultBaseURL   = "https://www.biblegateway.com/passage/"
	defaultUserAgent = "Mozilla/5.0 (compatible; redletter/0.1)"
	defaultTimeout   = 60 * time.Second
)

// Client fetches and parses passage pages. A nil Cache disables
// caching.
type Client struct {
	HTTP   *http.Client
	Cache  *store.Cache
	Config types.GatewayConfig
}

// New builds a Client with config defaults filled in.
func New(cfg types.GatewayConfig, cache *store.Cache) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ReferenceEdition == "" {
		cfg.ReferenceEdition = "CEB"
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		Cache:  cache,
		Config: cfg,
	}
}

// PassageURL builds the page URL for a passage in an edition.
func (c *Client) PassageURL(passage, edition string) string {
	q := url.Values{}
	q.Set("search", passage)
	q.Set("version", edition)
	return c.Config.BaseURL + "?" + q.Encode()
}

// FetchPassage retrieves the page for (passage, edition) and parses it
// into an HTML document. The cache, when present, is consulted first
// and refreshed on a successful fetch.
func (c *Client) FetchPassage(ctx context.Context, passage, edition string) (*html.Node, error) {
	if c.Cache != nil {
		body, hit, err := c.Cache.Get(ctx, passage, edition)
		if err == nil && hit {
			return htmlquery.Parse(bytes.NewReader(body))
		}
	}

	req, err := httputil.NewPageRequest(ctx, c.PassageURL(passage, edition), c.Config.UserAgent)
	if err != nil {
		return nil, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s (%s): %w", passage, edition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s (%s): HTTP %d", passage, edition, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s (%s): %w", passage, edition, err)
	}

	if c.Cache != nil {
		// Cache failures are not fetch failures.
		_ = c.Cache.Put(ctx, passage, edition, body)
	}

	return htmlquery.Parse(bytes.NewReader(body))
}
