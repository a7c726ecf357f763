package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GatewayConfig holds settings for fetching passages from the source site.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the passage endpoint (default the BibleGateway passage page).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ReferenceEdition is the edition whose markup explicitly marks direct
	// speech; its analysis drives coloring of every other edition (default CEB).
	ReferenceEdition string `json:"reference_edition" yaml:"reference_edition"`

	// RequestDelay is the pause between consecutive page fetches (default 1s).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`
}

// CacheConfig holds settings for the local page cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database. Empty disables caching.
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached page stays fresh. Zero or negative means
	// cached pages are never reused.
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// ServeConfig holds settings for the web UI.
type ServeConfig struct {
	// Addr is the listen address (default ":5001").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all stage configurations.
type Config struct {
	Gateway GatewayConfig `json:"gateway" yaml:"gateway"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Serve   ServeConfig   `json:"serve" yaml:"serve"`
}
