package backend

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/webnotes/notesweb/pkg/cookie"
)

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every call. Callers can still set shorter deadlines
// through their context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSession sets the cookie name used to forward the session token.
func WithSession(s *cookie.Session) Option {
	return func(c *Client) {
		if s != nil {
			c.session = s
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}
