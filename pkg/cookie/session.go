package cookie

import (
	"errors"
	"net/http"
	"time"
)

// DefaultName is the cookie the backend issues sessions under.
const DefaultName = "session_token"

// ErrCookieNotFound is returned when the request carries no session cookie.
var ErrCookieNotFound = errors.New("session cookie not found")

// Session reads, forwards and clears the single HTTP-only session cookie.
// The token is opaque: it is issued by the backend and never inspected here.
type Session struct {
	name string
	opts Options
}

// NewSession returns a Session for the named cookie. An empty name selects
// DefaultName.
func NewSession(name string, opts ...Option) *Session {
	if name == "" {
		name = DefaultName
	}
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Session{name: name, opts: applyOptions(defaults, opts)}
}

func (s *Session) Name() string { return s.name }

// Get returns the raw cookie value.
func (s *Session) Get(r *http.Request) (string, error) {
	c, err := r.Cookie(s.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Token reports whether the request carries a non-empty session cookie.
func (s *Session) Token(r *http.Request) (string, bool) {
	v, err := s.Get(r)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// Set writes a session cookie with the configured attributes.
func (s *Session) Set(w http.ResponseWriter, value string, opts ...Option) {
	o := applyOptions(s.opts, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	})
}

// Clear expires the session cookie in the browser.
func (s *Session) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     s.opts.Path,
		Domain:   s.opts.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.opts.Secure,
		HttpOnly: s.opts.HttpOnly,
		SameSite: s.opts.SameSite,
	})
}

// Attach adds the session cookie to an outbound request.
func (s *Session) Attach(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.AddCookie(&http.Cookie{Name: s.name, Value: token})
}

// Forward copies upstream Set-Cookie headers verbatim to w and returns the
// session token they carry, if any.
func (s *Session) Forward(w http.ResponseWriter, upstream http.Header) (string, bool) {
	for _, line := range upstream.Values("Set-Cookie") {
		w.Header().Add("Set-Cookie", line)
	}
	return s.FromSetCookie(upstream)
}

// FromSetCookie extracts the session token from Set-Cookie headers.
// An expired or empty cookie does not count.
func (s *Session) FromSetCookie(h http.Header) (string, bool) {
	resp := http.Response{Header: h}
	for _, c := range resp.Cookies() {
		if c.Name != s.name || c.Value == "" || c.MaxAge < 0 {
			continue
		}
		return c.Value, true
	}
	return "", false
}
