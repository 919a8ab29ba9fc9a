// Package metrics exposes Prometheus instrumentation for the intake pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded per entity.
const (
	OutcomeCreated     = "created"
	OutcomeDuplicate   = "duplicate"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Entity labels.
const (
	EntityLead        = "lead"
	EntityDistributor = "distributor"
)

// IntakeMetrics holds the counters and histograms for form submissions.
type IntakeMetrics struct {
	submissions    *prometheus.CounterVec
	persistLatency *prometheus.HistogramVec
}

// New registers the intake metrics on the default registerer.
func New() *IntakeMetrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the intake metrics on the given registerer. Tests
// pass their own registry to avoid duplicate-registration panics.
func NewWithRegistry(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nivela_intake_submissions_total",
			Help: "Form submissions by entity and outcome",
		}, []string{"entity", "outcome"}),
		persistLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nivela_intake_persist_duration_seconds",
			Help:    "Time taken to persist a submission",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"entity"}),
	}

	reg.MustRegister(m.submissions)
	reg.MustRegister(m.persistLatency)
	return m
}

// RecordSubmission increments the submission counter for an entity/outcome pair.
// Nil receivers are no-ops so handlers work without metrics wired.
func (m *IntakeMetrics) RecordSubmission(entity, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(entity, outcome).Inc()
}

// ObservePersist records how long a store insert took.
func (m *IntakeMetrics) ObservePersist(entity string, d time.Duration) {
	if m == nil {
		return
	}
	m.persistLatency.WithLabelValues(entity).Observe(d.Seconds())
}
