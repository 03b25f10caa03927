package observability

import (
	"net/http"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusUndetermined is the status label recorded for runs that hit the step ceiling.
const StatusUndetermined = "undetermined"

// Metrics holds the Prometheus collectors for machine runs.
type Metrics struct {
	runs     *prometheus.CounterVec
	steps    *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh private registry.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turing_runs_total",
				Help: "Total number of finished runs by verdict",
			},
			[]string{"machine", "status"},
		),
		steps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "turing_run_steps",
				Help:    "Number of steps taken by finished runs",
				Buckets: prometheus.ExponentialBuckets(1, 4, 12),
			},
			[]string{"machine"},
		),
		gatherer: reg,
	}

	for _, c := range []prometheus.Collector{m.runs, m.steps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record every halted run of the named machine.
func (m *Metrics) Hooks(machine string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHalt: func(e *domain.HaltEvent) {
			m.Observe(machine, e)
		},
	}
}

// Observe records a single halt event.
func (m *Metrics) Observe(machine string, e *domain.HaltEvent) {
	m.runs.WithLabelValues(machine, StatusLabel(e)).Inc()
	m.steps.WithLabelValues(machine).Observe(float64(e.Steps))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// StatusLabel maps a halt event to its metric label.
func StatusLabel(e *domain.HaltEvent) string {
	if e.Status == domain.StatusRunning && domain.IsUndetermined(e.Err) {
		return StatusUndetermined
	}
	return string(e.Status)
}
