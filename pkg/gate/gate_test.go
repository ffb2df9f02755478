package gate_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/tenant"
)

// recorder is the downstream handler; it records the path it was reached with.
type recorder struct {
	path  atomic.Value
	query atomic.Value
	info  atomic.Value
}

func (h *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.path.Store(r.URL.Path)
	h.query.Store(r.URL.RawQuery)
	if info, ok := tenant.FromContext(r.Context()); ok {
		h.info.Store(info)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *recorder) reached() string {
	p, _ := h.path.Load().(string)
	return p
}

type upstream struct {
	calls atomic.Int32
	err   error
	delay time.Duration
}

func (u *upstream) Validate(ctx context.Context, token string) error {
	u.calls.Add(1)
	if u.delay > 0 {
		select {
		case <-time.After(u.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return u.err
}

func request(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.DefaultName, Value: token})
	}
	return req
}

func clearsCookie(t *testing.T, rec *httptest.ResponseRecorder) bool {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.DefaultName && c.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestGate_Protected(t *testing.T) {
	t.Parallel()

	t.Run("no cookie redirects to login and clears cookie", func(t *testing.T) {
		t.Parallel()
		up := &upstream{}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/dashboard?tab=notes", ""))

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/login?returnUrl=%2Fdashboard%3Ftab%3Dnotes", rec.Header().Get("Location"))
		assert.True(t, clearsCookie(t, rec))
		assert.Empty(t, next.reached())
		assert.Zero(t, up.calls.Load())
	})

	t.Run("valid session passes unmodified", func(t *testing.T) {
		t.Parallel()
		up := &upstream{}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/dashboard", "good"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/dashboard", next.reached())
		assert.False(t, clearsCookie(t, rec))
		assert.Equal(t, int32(1), up.calls.Load())
	})

	t.Run("rejected session redirects and clears cookie", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: fmt.Errorf("me: %w", gate.ErrInvalidSession)}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/authorize-client", "stale"))

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/login?returnUrl=%2Fauthorize-client", rec.Header().Get("Location"))
		assert.True(t, clearsCookie(t, rec))
		assert.Empty(t, next.reached())
	})

	t.Run("upstream error fails open", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: errors.New("503 service unavailable")}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/dashboard", "tok"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/dashboard", next.reached())
		assert.False(t, clearsCookie(t, rec))
		assert.Equal(t, int32(1), up.calls.Load(), "no retries")
	})

	t.Run("upstream timeout fails open within bound", func(t *testing.T) {
		t.Parallel()
		up := &upstream{delay: 5 * time.Second}
		next := &recorder{}
		rec := httptest.NewRecorder()

		start := time.Now()
		gate.New(up, gate.WithTimeout(50*time.Millisecond)).Middleware(next).
			ServeHTTP(rec, request(http.MethodGet, "http://example.com/dashboard", "tok"))

		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/dashboard", next.reached())
	})

	t.Run("client disconnect cancels check", func(t *testing.T) {
		t.Parallel()
		up := &upstream{delay: 5 * time.Second}
		next := &recorder{}
		rec := httptest.NewRecorder()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := request(http.MethodGet, "http://example.com/dashboard", "tok").WithContext(ctx)

		start := time.Now()
		gate.New(up).Middleware(next).ServeHTTP(rec, req)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("presence mode never calls upstream", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: gate.ErrInvalidSession}
		next := &recorder{}
		rec := httptest.NewRecorder()

		g := gate.New(up, gate.WithMode(gate.ModePresence))
		g.Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/dashboard", "anything"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Zero(t, up.calls.Load())
	})
}

func TestGate_AuthPage(t *testing.T) {
	t.Parallel()

	t.Run("no cookie renders page", func(t *testing.T) {
		t.Parallel()
		up := &upstream{}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/login", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", next.reached())
		assert.Zero(t, up.calls.Load())
	})

	t.Run("valid session redirects to dashboard", func(t *testing.T) {
		t.Parallel()
		up := &upstream{}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/login", "good"))

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
		assert.Empty(t, next.reached())
	})

	t.Run("invalid session renders page and clears cookie", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: gate.ErrInvalidSession}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/register", "stale"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/register", next.reached())
		assert.True(t, clearsCookie(t, rec))
	})

	t.Run("ambiguous failure renders page", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: errors.New("connection refused")}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/login", "tok"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login", next.reached())
		assert.False(t, clearsCookie(t, rec))
	})
}

func TestGate_Tenant(t *testing.T) {
	t.Parallel()

	t.Run("root rewrites to profile", func(t *testing.T) {
		t.Parallel()
		up := &upstream{}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://alice.example.com/", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/profile/alice", next.reached())
		assert.Empty(t, rec.Header().Get("Location"))
	})

	t.Run("note rewrite keeps query and skips session checks", func(t *testing.T) {
		t.Parallel()
		up := &upstream{err: gate.ErrInvalidSession}
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://alice.example.com/dashboard?x=1", "tok"))

		assert.Equal(t, "/profile/alice/note/dashboard", next.reached())
		assert.Equal(t, "x=1", next.query.Load())
		assert.Zero(t, up.calls.Load())
		assert.False(t, clearsCookie(t, rec))

		info, ok := next.info.Load().(tenant.Info)
		require.True(t, ok)
		assert.Equal(t, "alice", info.Tenant)
	})

	t.Run("www is the main domain", func(t *testing.T) {
		t.Parallel()
		next := &recorder{}
		rec := httptest.NewRecorder()

		gate.New(&upstream{}).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://www.example.com/about", ""))

		assert.Equal(t, "/about", next.reached())
	})

	t.Run("local development subdomain", func(t *testing.T) {
		t.Parallel()
		next := &recorder{}
		rec := httptest.NewRecorder()

		req := request(http.MethodGet, "/hello", "")
		req.Host = "bob.localhost:3000"
		gate.New(&upstream{}).Middleware(next).ServeHTTP(rec, req)

		assert.Equal(t, "/profile/bob/note/hello", next.reached())
	})
}

func TestGate_Public(t *testing.T) {
	t.Parallel()

	up := &upstream{}
	next := &recorder{}
	rec := httptest.NewRecorder()

	gate.New(up).Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/user-guide", "tok"))

	assert.Equal(t, "/user-guide", next.reached())
	assert.Zero(t, up.calls.Load())
}

func TestGate_NilValidatorIsPresenceMode(t *testing.T) {
	t.Parallel()

	g := gate.New(nil)
	assert.Equal(t, gate.ModePresence, g.Mode())

	next := &recorder{}
	rec := httptest.NewRecorder()
	g.Middleware(next).ServeHTTP(rec, request(http.MethodGet, "http://example.com/login", "tok"))
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestGate_CustomOptions(t *testing.T) {
	t.Parallel()

	g := gate.New(&upstream{err: gate.ErrInvalidSession},
		gate.WithSession(cookie.NewSession("sid")),
		gate.WithPaths(gate.Paths{Login: "/signin"}),
		gate.WithClassifier(tenant.NewClassifier(tenant.WithDomain("notes.dev"))),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://notes.dev/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})
	g.Middleware(&recorder{}).ServeHTTP(rec, req)

	assert.Equal(t, "/signin?returnUrl=%2Fdashboard", rec.Header().Get("Location"))

	next := &recorder{}
	g.Middleware(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "http://alice.other.dev/", nil))
	assert.Equal(t, "/", next.reached(), "foreign domain is not a tenant")
}

func TestGate_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	g := gate.New(&upstream{}, gate.WithMetrics(gate.NewMetrics(reg, "notesweb")))
	h := g.Middleware(&recorder{})

	h.ServeHTTP(httptest.NewRecorder(), request(http.MethodGet, "http://example.com/dashboard", "tok"))
	h.ServeHTTP(httptest.NewRecorder(), request(http.MethodGet, "http://example.com/", ""))

	count, err := testutil.GatherAndCount(reg, "notesweb_gate_decisions_total", "notesweb_gate_validation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	g, err := gate.NewFromConfig(gate.Config{Mode: "Presence", ValidationTimeout: time.Second}, &upstream{})
	require.NoError(t, err)
	assert.Equal(t, gate.ModePresence, g.Mode())

	_, err = gate.NewFromConfig(gate.Config{Mode: "strict"}, &upstream{})
	assert.ErrorIs(t, err, gate.ErrUnknownMode)
}
