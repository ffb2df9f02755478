package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webnotes/notesweb/modules/auth"
	"github.com/webnotes/notesweb/modules/bff"
	"github.com/webnotes/notesweb/modules/pages"
	"github.com/webnotes/notesweb/pkg/clientip"
	"github.com/webnotes/notesweb/pkg/gate"
	"github.com/webnotes/notesweb/pkg/httpserver"
	"github.com/webnotes/notesweb/pkg/logger"
	"github.com/webnotes/notesweb/pkg/requestid"
)

type routeDeps struct {
	gate      *gate.Gate
	authPages *auth.Pages
	pages     *pages.Pages
	api       *bff.API
}

// authPaths are served by the auth pages router.
var authPaths = []string{"/login", "/register", "/logout"}

// routes builds the root router. Top-level middleware runs before route
// matching, so a tenant rewrite is routed by its internal path.
func (a *App) routes(d routeDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(a.accessLog)
	r.Use(d.gate.Middleware)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.log, a.checks))
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Mount("/api", d.api.Handle())
	authRouter := d.authPages.Handle()
	for _, p := range authPaths {
		r.Handle(p, authRouter)
	}
	d.pages.Handle(r)
	return r
}

func (a *App) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("host", r.Host),
			logger.Path(r.URL.Path),
			logger.Status(ww.Status()),
			logger.Duration(time.Since(start)),
			slog.String("ip", clientip.FromRequest(r)),
		)
	})
}
