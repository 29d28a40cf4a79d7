// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and LEXREC_* environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
)

// Content source kinds.
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// ContentSource selects where content is read from: memory, sqlite or http.
	ContentSource string `koanf:"content_source"`

	// SeedFile is a YAML file of content items loaded into the memory or sqlite store.
	SeedFile string `koanf:"seed_file"`

	// SQLitePath is the database file used by the sqlite source.
	SQLitePath string `koanf:"sqlite_path"`

	// ContentAPIURL is the base URL of the blog post API used by the http source.
	ContentAPIURL string `koanf:"content_api_url"`

	// FetchTimeoutMS bounds every content fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// BreakerFailureThreshold is the consecutive failures that open the breaker.
	BreakerFailureThreshold int `koanf:"breaker_failure_threshold"`

	// BreakerOpenTimeoutMS is how long the breaker stays open before probing.
	BreakerOpenTimeoutMS int `koanf:"breaker_open_timeout_ms"`

	// DefaultLimit is used when a request does not ask for a count.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the limit of any request.
	MaxLimit int `koanf:"max_limit"`

	// MinSimilarity is the score below which similarity candidates are dropped.
	MinSimilarity float64 `koanf:"min_similarity"`

	// CandidatePoolMin and CandidatePoolFactor size the similarity pool as
	// max(min, limit*factor).
	CandidatePoolMin    int `koanf:"candidate_pool_min"`
	CandidatePoolFactor int `koanf:"candidate_pool_factor"`

	// RateLimitRPS and RateLimitBurst configure the API token bucket.
	// A zero RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		ContentSource:           SourceMemory,
		SQLitePath:              "lexrec.db",
		FetchTimeoutMS:          3000,
		BreakerFailureThreshold: 5,
		BreakerOpenTimeoutMS:    30_000,
		DefaultLimit:            6,
		MaxLimit:                50,
		MinSimilarity:           0.15,
		CandidatePoolMin:        50,
		CandidatePoolFactor:     3,
		RateLimitRPS:            50,
		RateLimitBurst:          100,
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// BreakerOpenTimeout returns BreakerOpenTimeoutMS as a duration.
func (c *Config) BreakerOpenTimeout() time.Duration {
	return time.Duration(c.BreakerOpenTimeoutMS) * time.Millisecond
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.ContentSource {
	case SourceMemory:
	case SourceSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path must be set for the sqlite source", ErrInvalidConfig)
		}
	case SourceHTTP:
		if c.ContentAPIURL == "" {
			return fmt.Errorf("%w: content_api_url must be set for the http source", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown content_source %q", ErrInvalidConfig, c.ContentSource)
	}
	if c.DefaultLimit <= 0 || c.MaxLimit <= 0 {
		return fmt.Errorf("%w: default_limit and max_limit must be positive", ErrInvalidConfig)
	}
	if c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("%w: default_limit %d exceeds max_limit %d", ErrInvalidConfig, c.DefaultLimit, c.MaxLimit)
	}
	if c.MinSimilarity < 0 || c.MinSimilarity > 1 {
		return fmt.Errorf("%w: min_similarity must be within [0,1]", ErrInvalidConfig)
	}
	if c.CandidatePoolMin <= 0 || c.CandidatePoolFactor <= 0 {
		return fmt.Errorf("%w: candidate pool settings must be positive", ErrInvalidConfig)
	}
	if c.FetchTimeoutMS <= 0 || c.BreakerOpenTimeoutMS <= 0 || c.BreakerFailureThreshold <= 0 {
		return fmt.Errorf("%w: fetch and breaker settings must be positive", ErrInvalidConfig)
	}
	if c.RateLimitRPS < 0 || (c.RateLimitRPS > 0 && c.RateLimitBurst <= 0) {
		return fmt.Errorf("%w: rate_limit_burst must be positive when rate limiting", ErrInvalidConfig)
	}
	return nil
}
