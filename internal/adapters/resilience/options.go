package resilience

import (
	"time"

	"github.com/okian/lexrec/pkg/logger"
)

// Defaults used when the corresponding option is not supplied.
const (
	DefaultFailureThreshold = 5
	DefaultOpenTimeout      = 30 * time.Second
	DefaultCallTimeout      = 3 * time.Second
	DefaultHalfOpenRequests = 1
)

type config struct {
	name             string
	source           string
	failureThreshold uint32
	openTimeout      time.Duration
	callTimeout      time.Duration
	halfOpenRequests uint32
	log              logger.Logger
}

// Option applies a configuration option to the BreakerFetcher.
type Option func(*config)

// WithName sets the breaker name used in logs and the breaker_state gauge.
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithSource sets the source label used for fetch metrics.
func WithSource(source string) Option {
	return func(c *config) {
		if source != "" {
			c.source = source
		}
	}
}

// WithFailureThreshold sets how many consecutive failures open the breaker.
func WithFailureThreshold(n uint32) Option {
	return func(c *config) {
		if n > 0 {
			c.failureThreshold = n
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before probing.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.openTimeout = d
		}
	}
}

// WithCallTimeout bounds each wrapped Fetch call.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.callTimeout = d
		}
	}
}

// WithHalfOpenRequests sets how many probe calls are let through half-open.
func WithHalfOpenRequests(n uint32) Option {
	return func(c *config) {
		if n > 0 {
			c.halfOpenRequests = n
		}
	}
}

// WithLogger sets the logger for breaker state changes.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}
