package contentapi

import (
	"net/http"
	"time"

	"github.com/okian/lexrec/pkg/logger"
)

// Defaults used when the corresponding option is not supplied.
const (
	DefaultTimeout      = 5 * time.Second
	DefaultActiveStatus = "Active"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.Timeout = d
		}
	}
}

// WithActiveStatus sets how the upstream spells the active status.
func WithActiveStatus(s string) Option {
	return func(cl *Client) {
		if s != "" {
			cl.activeStatus = s
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}
