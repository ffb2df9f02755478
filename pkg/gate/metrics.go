package gate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records gate decisions and upstream check latency.
// A nil *Metrics records nothing.
type Metrics struct {
	decisions   *prometheus.CounterVec
	validations *prometheus.HistogramVec
}

// NewMetrics registers the gate collectors with reg.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Requests handled by the edge gate by route and action.",
		}, []string{"route", "action"}),
		validations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "validation_duration_seconds",
			Help:      "Latency of upstream session checks by outcome.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observeDecision(d Decision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(string(d.Route), string(d.Action)).Inc()
}

func (m *Metrics) observeValidation(c Check, took time.Duration) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(string(c)).Observe(took.Seconds())
}
