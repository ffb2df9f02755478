// Package app wires the notes web front end together: the backend client,
// the session gate, the auth and dashboard pages, the /api surface, the
// public page cache and the release source. New builds everything from a
// Config and Handler returns the root http.Handler.
//
//	var cfg app.Config
//	config.MustLoad(&cfg)
//	a, err := app.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer a.Close()
//	return a.Run(ctx)
//
// Health checks are served at /healthz and /readyz, Prometheus metrics at
// /metrics.
package app
