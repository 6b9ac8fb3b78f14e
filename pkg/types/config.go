package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "toolscout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the page fetcher.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// NavigationTimeout bounds the wait for a page to settle after
	// navigation. The fetcher never waits indefinitely (default 15s).
	NavigationTimeout time.Duration `json:"navigation_timeout" yaml:"navigation_timeout"`

	// Headless controls whether the browser runs headless (default true).
	Headless bool `json:"headless" yaml:"headless"`

	// MaxBodyBytes caps how much of a raw response body is read (default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`

	// AuthToken, when set, is sent as a bearer token with every request the
	// fetcher makes. Set it only on a fetcher scoped to a single host.
	AuthToken string `json:"auth_token,omitempty" yaml:"auth_token,omitempty"`
}

// DiscoveryConfig holds settings for the discovery engine.
type DiscoveryConfig struct {
	Fetch FetchConfig `json:"fetch" yaml:"fetch"`

	// MaxResults is the default result limit when the caller passes none
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxCandidateLinks caps how many candidate links an adapter follows
	// from one search results page (default 20).
	MaxCandidateLinks int `json:"max_candidate_links" yaml:"max_candidate_links"`

	// CodeHostToken is an optional bearer token for the code-hosting
	// platform, used to raise rate limits. Loaded from .secrets/ when empty.
	CodeHostToken string `json:"code_host_token,omitempty" yaml:"code_host_token,omitempty"`
}

// CacheConfig holds settings for the query result cache.
type CacheConfig struct {
	// Path is the SQLite database file (default "toolscout-cache.db").
	Path string `json:"path" yaml:"path"`

	// TTL is how long a cached ranking stays valid (default 1h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// CatalogConfig holds settings for the local seed catalog.
type CatalogConfig struct {
	// Path is the YAML fixture file holding seed manifests.
	Path string `json:"path" yaml:"path"`
}
