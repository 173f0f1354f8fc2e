// Package metrics exposes Prometheus counters for cost submissions.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/neighborly/backend/internal/costmodel"
	"github.com/neighborly/backend/internal/guard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK         = "ok"
	OutcomeValidation = "validation"
	OutcomeAddress    = "address"
	OutcomeAuth       = "auth"
	OutcomeInFlight   = "in_flight"
	OutcomeTimeout    = "timeout"
	OutcomeError      = "error"
)

// ClassifySubmit maps a submission result onto an outcome label.
func ClassifySubmit(err error) string {
	if err == nil {
		return OutcomeOK
	}
	switch costmodel.KindOf(err) {
	case costmodel.FailureValidation:
		return OutcomeValidation
	case costmodel.FailureAddress:
		return OutcomeAddress
	case costmodel.FailureAuth:
		return OutcomeAuth
	}
	switch {
	case errors.Is(err, guard.ErrHeld):
		return OutcomeInFlight
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}

// Metrics holds the collectors the cost service reports to.
type Metrics struct {
	registry        *prometheus.Registry
	submissions     *prometheus.CounterVec
	submitDuration  prometheus.Histogram
	entriesWritten  *prometheus.CounterVec
	prefillFailures prometheus.Counter
}

// New registers the collectors, plus Go runtime and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return newMetrics(reg)
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neighborly",
			Name:      "cost_submissions_total",
			Help:      "Cost form submissions by outcome.",
		}, []string{"outcome"}),
		submitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "neighborly",
			Name:      "cost_submit_duration_seconds",
			Help:      "Time spent writing a cost submission.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		entriesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "neighborly",
			Name:      "cost_entries_written_total",
			Help:      "Cost rows upserted, by cost kind.",
		}, []string{"cost_kind"}),
		prefillFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "neighborly",
			Name:      "cost_prefill_failures_total",
			Help:      "Cost form loads that fell back to the bare template.",
		}),
	}
	reg.MustRegister(m.submissions, m.submitDuration, m.entriesWritten, m.prefillFailures)
	return m
}

// ObserveSubmit records one submission. Nil receivers are no-ops so callers
// may run without metrics.
func (m *Metrics) ObserveSubmit(err error, took time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(ClassifySubmit(err)).Inc()
	if err == nil {
		m.submitDuration.Observe(took.Seconds())
	}
}

// AddEntriesWritten counts upserted rows of one kind.
func (m *Metrics) AddEntriesWritten(kind costmodel.Kind, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.entriesWritten.WithLabelValues(string(kind)).Add(float64(n))
}

// IncPrefillFailure counts a form served without saved values.
func (m *Metrics) IncPrefillFailure() {
	if m == nil {
		return
	}
	m.prefillFailures.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
