package bff

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/ratelimiter"
	"github.com/webnotes/notesweb/pkg/releases"
)

// API is the JSON surface the browser talks to. It holds no session state
// of its own: the session cookie is relayed to the backend on every call.
type API struct {
	cfg      Config
	auth     *auth.Service
	notes    *notes.Service
	client   *backend.Client
	releases releases.Source
	limiter  *ratelimiter.Bucket
	log      *slog.Logger
}

type Option func(*API)

// WithRateLimiter limits the login, registration and username endpoints
// per client address and path.
func WithRateLimiter(b *ratelimiter.Bucket) Option {
	return func(a *API) { a.limiter = b }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.log = l
		}
	}
}

func New(cfg Config, authSvc *auth.Service, notesSvc *notes.Service, client *backend.Client, rel releases.Source, opts ...Option) *API {
	a := &API{
		cfg:      cfg,
		auth:     authSvc,
		notes:    notesSvc,
		client:   client,
		releases: rel,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle returns the router to mount at /api.
func (a *API) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(CORS(CORSConfig{AllowOrigins: a.cfg.AllowedOrigins, AllowCredentials: true}))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrMethodNotAllowed).Render(w, r)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if a.limiter != nil {
				r.Use(ratelimiter.Middleware(a.limiter,
					ratelimiter.Composite(ratelimiter.ByIP(), ratelimiter.ByPath()),
					ratelimiter.WithLimitedHandler(http.HandlerFunc(tooManyRequests)),
					ratelimiter.WithLogger(a.log),
				))
			}
			r.Post("/login", a.login())
			r.Post("/register", a.register())
			r.Get("/usernameExists", a.usernameExists())
		})
		r.Post("/logout", a.logout())
		r.Get("/me", a.me())
		r.Post("/authcode", a.authCode())
	})

	r.Route("/notes", func(r chi.Router) {
		r.Get("/", a.listNotes())
		r.Get("/stream", a.streamNotes())
		r.Get("/{id}", a.getNote())
		r.Post("/{id}/deploy", a.deploy())
		r.Delete("/{id}/deploy", a.undeploy())
	})

	r.Route("/profile", func(r chi.Router) {
		r.Patch("/description", a.updateDescription())
		r.Patch("/picture", a.updatePicture())
		r.Delete("/picture", a.removePicture())
	})

	r.Get("/activity", a.activity())
	r.Get("/statistics", a.statistics())
	r.Get("/releases/latest", a.latestRelease())

	return r
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrTooManyRequests.WithMessage("Too many requests, please try again later")).Render(w, r)
}

// session returns the caller's token or errUnauthorized. No upstream call
// is made without one.
func (a *API) session(ctx handler.Context) (string, error) {
	token, ok := a.auth.Cookie().Token(ctx.Request())
	if !ok {
		return "", errUnauthorized
	}
	return token, nil
}

// fail logs unexpected failures and renders err in the envelope.
func (a *API) fail(ctx handler.Context, err error) handler.Response {
	mapped, ok := apiError(err)
	if !ok {
		a.log.ErrorContext(ctx, "api request failed",
			logger.Component("bff"),
			logger.Path(ctx.Request().URL.Path),
			logger.Error(err),
		)
	}
	return handler.JSONError(mapped)
}
