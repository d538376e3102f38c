package posts

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithBaseURL points the client at a different API root. A trailing slash is
// ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("base url cannot be empty")
		}
		c.baseURL = trimBaseURL(baseURL)
		return nil
	}
}

// WithHTTPTimeout bounds each request made through the default transport.
// It has no effect when a custom Doer is installed with WithDoer.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDoer replaces the HTTP transport entirely.
func WithDoer(d Doer) Option {
	return func(c *Client) error {
		if d == nil {
			return fmt.Errorf("doer cannot be nil")
		}
		c.doer = d
		return nil
	}
}

// WithLogger sets the logger used for swallowed upstream failures and debug
// dumps. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithDebugLogging dumps every request and response at debug level. Do not
// enable it in production. Like WithHTTPTimeout it wraps the default
// transport only, so it has no effect once WithDoer installs a custom Doer.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, ok := c.http.Transport.(*debugTransport); !ok {
				c.http.Transport = &debugTransport{base: c.http.Transport, log: &c.log}
			}
		}
		return nil
	}
}
