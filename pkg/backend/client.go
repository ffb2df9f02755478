package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/logger"
)

// DefaultTimeout bounds a single backend call.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the notes backend. Every call is a single attempt: there
// are no retries, and the session token is forwarded as a cookie only when
// the caller passes one.
type Client struct {
	base      *url.URL
	http      *http.Client
	session   *cookie.Session
	timeout   time.Duration
	userAgent string
	log       *slog.Logger
}

// New returns a Client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	c := &Client{
		base:      u,
		http:      &http.Client{},
		session:   cookie.NewSession(cookie.DefaultName),
		timeout:   DefaultTimeout,
		userAgent: "notesweb",
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call describes one backend request.
type call struct {
	method      string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

// pathOf builds prefix followed by one escaped segment per arg. Empty and
// dot segments name no resource of their own and are refused as not found.
func pathOf(prefix string, segments ...string) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	for _, s := range segments {
		if s == "" || s == "." || s == ".." {
			return "", fmt.Errorf("%w: path segment %q", ErrNotFound, s)
		}
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String(), nil
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("backend: encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// send performs c and decodes a 2xx JSON body into out when out is non-nil.
// It returns the response headers so callers can relay Set-Cookie.
func (c *Client) send(ctx context.Context, cl call, out any) (http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := url.Parse(c.base.String() + cl.path)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), cl.body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	c.session.Attach(req, cl.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "backend call failed",
			slog.String("method", cl.method),
			logger.Path(cl.path),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, cl.method, cl.path, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "backend call",
		slog.String("method", cl.method),
		logger.Path(cl.path),
		logger.Status(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return resp.Header, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return resp.Header, fmt.Errorf("%w: %s: %w", ErrInvalidResponse, cl.path, err)
	}
	return resp.Header, nil
}

func decodeError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		e.Message = body.Error
	}
	return e
}
