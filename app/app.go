package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/webnotes/notesweb/handler"
	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/modules/bff"
	"github.com/webnotes/notesweb/modules/notes"
	"github.com/webnotes/notesweb/modules/pages"
	"github.com/webnotes/notesweb/pkg/backend"
	"github.com/webnotes/notesweb/pkg/cache"
	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/environment"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/httpserver"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/ratelimiter"
	"github.com/webnotes/notesweb/pkg/redis"
	"github.com/webnotes/notesweb/pkg/releases"
	"github.com/webnotes/notesweb/pkg/requestid"
	"github.com/webnotes/notesweb/pkg/store"
	"github.com/webnotes/notesweb/pkg/tenant"
	"github.com/webnotes/notesweb/views"
)

const metricsNamespace = "notesweb"

// App holds the wired components and the HTTP handler built from them.
type App struct {
	cfg      Config
	log      *slog.Logger
	handler  http.Handler
	registry *prometheus.Registry
	checks   map[string]httpserver.Check
	closers  []func() error
}

type options struct {
	log       *slog.Logger
	cache     cache.Cache
	s3Options []releases.S3Option
}

type Option func(*options)

// WithLogger replaces the logger built from the config.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCache replaces the public page cache chosen from the config.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// WithS3Options is passed to the S3 release source.
func WithS3Options(opts ...releases.S3Option) Option {
	return func(o *options) { o.s3Options = append(o.s3Options, opts...) }
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(environment.Parse(cfg.Env), cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor(), tenant.LoggerExtractor()),
	)
}

// New connects the external dependencies and builds the handler chain.
// Close releases what New opened.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = NewLogger(cfg)
	}
	if cfg.Pages.RootDomain == "" {
		cfg.Pages.RootDomain = cfg.Domain
	}

	a := &App{
		cfg:      cfg,
		log:      o.log,
		registry: prometheus.NewRegistry(),
		checks:   make(map[string]httpserver.Check),
	}
	a.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := a.build(ctx, o); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func (a *App) build(ctx context.Context, o options) error {
	cfg := a.cfg
	log := a.log

	session := cookie.NewFromConfig(cfg.Cookie)
	client, err := backend.NewFromConfig(cfg.Backend,
		backend.WithSession(session),
		backend.WithLogger(log.With(logger.Component("backend"))),
	)
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	pageCache, err := a.pageCache(ctx, o.cache)
	if err != nil {
		return err
	}

	src, err := releases.NewFromConfig(ctx, cfg.Releases, client, o.s3Options...)
	if err != nil {
		return fmt.Errorf("releases: %w", err)
	}
	rel := releases.Cached(src, pageCache, cfg.Releases.CacheTTL)

	authSvc := auth.NewService(client, auth.WithSession(session), auth.WithLogger(log))
	notesSvc := notes.NewService(client,
		notes.NewStore(store.WithTTL(cfg.NotesTTL)),
		notes.WithLogger(log.With(logger.Component("notes"))),
	)
	public := pages.NewPublic(client, pageCache, cfg.Pages.PublicCacheTTL, log.With(logger.Component("cache")))

	limits := ratelimiter.NewMemoryStore()
	a.closers = append(a.closers, func() error {
		limits.Close()
		return nil
	})
	bucket, err := ratelimiter.NewBucket(limits, cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	classifier := tenant.NewClassifier(
		tenant.WithDomain(cfg.Domain),
		tenant.WithReserved(cfg.Reserved...),
	)
	g, err := gate.NewFromConfig(cfg.Gate, authSvc.Validator(),
		gate.WithClassifier(classifier),
		gate.WithSession(session),
		gate.WithLogger(log.With(logger.Component("gate"))),
		gate.WithMetrics(gate.NewMetrics(a.registry, metricsNamespace)),
	)
	if err != nil {
		return fmt.Errorf("gate: %w", err)
	}

	errorHandler := handler.NewErrorHandler(log, views.ErrorPage)
	a.handler = a.routes(routeDeps{
		gate:      g,
		authPages: auth.NewPages(authSvc, views.AuthViews(), errorHandler),
		pages: pages.New(cfg.Pages, pages.Deps{
			Auth:     authSvc,
			Notes:    notesSvc,
			Client:   client,
			Releases: rel,
			Public:   public,
		}, views.PageViews(), pages.WithLogger(log), pages.WithErrorHandler(errorHandler)),
		api: bff.New(cfg.API, authSvc, notesSvc, client, rel,
			bff.WithRateLimiter(bucket),
			bff.WithLogger(log.With(logger.Component("api"))),
		),
	})

	log.InfoContext(ctx, "application wired",
		slog.String("gate_mode", string(g.Mode())),
		slog.String("releases", cfg.Releases.Source),
		slog.Bool("redis", cfg.Redis.Enabled() && o.cache == nil),
	)
	return nil
}

// pageCache returns override when set, Redis when configured, and an
// in-process LRU otherwise.
func (a *App) pageCache(ctx context.Context, override cache.Cache) (cache.Cache, error) {
	if override != nil {
		return override, nil
	}
	if !a.cfg.Redis.Enabled() {
		return cache.NewMemory(a.cfg.CacheCapacity), nil
	}
	rdb, err := redis.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.closers = append(a.closers, rdb.Close)
	a.checks["redis"] = redis.Healthcheck(rdb)
	return redis.NewCache(rdb, a.cfg.Redis.KeyPrefix), nil
}

// Handler is the root handler: request id, tenant gate, then routing.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.handler)
}

// Close releases connections opened by New. It is safe to call twice.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
