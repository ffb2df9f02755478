package gate

import (
	"log/slog"
	"time"

	"github.com/webnotes/notesweb/pkg/cookie"
	"github.com/webnotes/notesweb/pkg/tenant"
)

// Option configures a Gate.
type Option func(*Gate)

// WithMode selects presence-only or validated checking.
func WithMode(m Mode) Option {
	return func(g *Gate) { g.mode = m }
}

// WithTimeout bounds each upstream session check.
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithClassifier(c *tenant.Classifier) Option {
	return func(g *Gate) {
		if c != nil {
			g.classifier = c
		}
	}
}

func WithSession(s *cookie.Session) Option {
	return func(g *Gate) {
		if s != nil {
			g.session = s
		}
	}
}

// WithTable replaces the route table.
func WithTable(t Table) Option {
	return func(g *Gate) { g.table = t }
}

func WithPaths(p Paths) Option {
	return func(g *Gate) {
		if p.Login != "" {
			g.paths.Login = p.Login
		}
		if p.Dashboard != "" {
			g.paths.Dashboard = p.Dashboard
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}
