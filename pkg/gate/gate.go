package gate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/tenant"
)

// DefaultTimeout bounds the upstream session check.
const DefaultTimeout = 3 * time.Second

var (
	// DefaultExcludedPrefixes are served as they arrive, even on a tenant
	// host: the JSON API and the operational endpoints.
	DefaultExcludedPrefixes = []string{"/api", "/healthz", "/readyz", "/metrics"}

	defaultAuthPrefixes      = []string{"/login", "/register"}
	defaultProtectedPrefixes = []string{"/dashboard", "/authorize-client"}
)

// Gate is the edge middleware: it sends tenant hosts to their internal
// pages and applies the session policy to everything else.
//
// The gate keeps no state between requests. Each auth-page or protected
// request carrying a cookie costs at most one upstream check, with no
// retries; ambiguous failures let the request through.
type Gate struct {
	validator  Validator
	classifier *tenant.Classifier
	session    *cookie.Session
	table      Table
	mode       Mode
	timeout    time.Duration
	paths      Paths
	log        *slog.Logger
	metrics    *Metrics
}

// New returns a Gate. A nil validator forces ModePresence.
func New(v Validator, opts ...Option) *Gate {
	g := &Gate{
		validator:  v,
		classifier: tenant.NewClassifier(),
		session:    cookie.NewSession(cookie.DefaultName),
		table:      DefaultTable(DefaultExcludedPrefixes, defaultAuthPrefixes, defaultProtectedPrefixes),
		mode:       ModeValidated,
		timeout:    DefaultTimeout,
		paths:      Paths{Login: "/login", Dashboard: "/dashboard"},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.validator == nil {
		g.mode = ModePresence
	}
	return g
}

// Mode reports the effective checking mode.
func (g *Gate) Mode() Mode { return g.mode }

// Result is a Decision together with the tenant it applies to.
type Result struct {
	Decision
	Tenant string
}

// Evaluate classifies r and, when the policy needs it, checks the session
// upstream. It never writes to the response.
func (g *Gate) Evaluate(r *http.Request) Result {
	host := g.classifier.Classify(r.Host)
	route := g.table.Classify(Input{Host: host, Path: r.URL.Path})

	token, hasCookie := g.session.Token(r)

	check := CheckSkipped
	if NeedsCheck(route, hasCookie, g.mode) {
		check = g.check(r.Context(), token)
	}

	return Result{
		Decision: Decide(route, hasCookie, g.mode, check, g.paths, r.URL.RequestURI()),
		Tenant:   host.Tenant,
	}
}

// Middleware applies Evaluate's verdict: rewrite, redirect (307) or pass.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := g.Evaluate(r)
		g.metrics.observeDecision(res.Decision)

		g.log.DebugContext(r.Context(), "gate decision",
			logger.Route(string(res.Route)),
			logger.Path(r.URL.Path),
			slog.String("action", string(res.Action)),
			slog.String("reason", res.Reason),
		)

		if res.ClearCookie {
			g.session.Clear(w)
		}

		switch res.Action {
		case ActionRewrite:
			next.ServeHTTP(w, tenant.Rewrite(r, res.Tenant))
		case ActionRedirect:
			http.Redirect(w, r, res.Location, http.StatusTemporaryRedirect)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Gate) check(ctx context.Context, token string) Check {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := g.validator.Validate(ctx, token)
	took := time.Since(start)

	c := classify(err)
	g.metrics.observeValidation(c, took)

	if c == CheckUnavailable {
		g.log.WarnContext(ctx, "session check unavailable, failing open",
			logger.Error(err),
			logger.Duration(took),
			logger.Component("gate"),
		)
	}
	return c
}
