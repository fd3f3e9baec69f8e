package monday

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the API endpoint URL.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.url = url
		}
	}
}

// WithLogger sets the logger used by the client and its services.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithMaxRetries sets the maximum number of attempts per governed request.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries > 0 {
			c.maxRetries = retries
		}
	}
}

// WithRateLimitWindow sets the cooldown used for mutation-rate faults and
// transport faults, which carry no server-specified reset time.
func WithRateLimitWindow(window time.Duration) Option {
	return func(c *Client) {
		if window >= 0 {
			c.rateLimitWindow = window
		}
	}
}

// WithHeaders merges extra HTTP headers into every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithLimiter installs a shared rate limiter that every attempt waits on
// before hitting the network. Passing the same limiter to several clients
// coordinates them against one provider-side budget.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}
