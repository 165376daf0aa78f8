// Package metrics defines the prometheus metric sets used by the scorecard
// and standings services. Services depend on the interfaces so tests can
// swap in no-op implementations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ImportMetrics records scorecard import activity.
type ImportMetrics interface {
	RecordImportAttempt(eventID string)
	RecordRowsParsed(eventID string, count int)
	RecordRowsRejected(eventID string, count int)
	RecordUpsertFailure(eventID string)
	RecordGuestResolved(eventID string)
	RecordImportDuration(eventID string, d time.Duration)
}

// StandingsMetrics records standings computations.
type StandingsMetrics interface {
	RecordComputeAttempt(eventID string, mode string)
	RecordComputeDuration(eventID string, mode string, d time.Duration)
}

type promImportMetrics struct {
	attempts       *prometheus.CounterVec
	rowsParsed     *prometheus.CounterVec
	rowsRejected   *prometheus.CounterVec
	upsertFailures *prometheus.CounterVec
	guestsResolved *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewImportMetrics registers and returns the prometheus-backed import
// metric set.
func NewImportMetrics(reg prometheus.Registerer) ImportMetrics {
	m := &promImportMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorecard_import_attempts_total",
			Help: "Number of scorecard import attempts.",
		}, []string{"event_id"}),
		rowsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorecard_rows_parsed_total",
			Help: "Number of player rows accepted by the parser.",
		}, []string{"event_id"}),
		rowsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorecard_rows_rejected_total",
			Help: "Number of player rows rejected as incomplete.",
		}, []string{"event_id"}),
		upsertFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorecard_upsert_failures_total",
			Help: "Number of per-player persistence failures.",
		}, []string{"event_id"}),
		guestsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorecard_guests_resolved_total",
			Help: "Number of parsed names resolved to guests.",
		}, []string{"event_id"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorecard_import_duration_seconds",
			Help:    "Wall time of one import commit.",
			Buckets: prometheus.DefBuckets,
		}, []string{"event_id"}),
	}
	reg.MustRegister(m.attempts, m.rowsParsed, m.rowsRejected, m.upsertFailures, m.guestsResolved, m.duration)
	return m
}

func (m *promImportMetrics) RecordImportAttempt(eventID string) {
	m.attempts.WithLabelValues(eventID).Inc()
}

func (m *promImportMetrics) RecordRowsParsed(eventID string, count int) {
	m.rowsParsed.WithLabelValues(eventID).Add(float64(count))
}

func (m *promImportMetrics) RecordRowsRejected(eventID string, count int) {
	m.rowsRejected.WithLabelValues(eventID).Add(float64(count))
}

func (m *promImportMetrics) RecordUpsertFailure(eventID string) {
	m.upsertFailures.WithLabelValues(eventID).Inc()
}

func (m *promImportMetrics) RecordGuestResolved(eventID string) {
	m.guestsResolved.WithLabelValues(eventID).Inc()
}

func (m *promImportMetrics) RecordImportDuration(eventID string, d time.Duration) {
	m.duration.WithLabelValues(eventID).Observe(d.Seconds())
}

type promStandingsMetrics struct {
	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewStandingsMetrics registers and returns the prometheus-backed standings
// metric set.
func NewStandingsMetrics(reg prometheus.Registerer) StandingsMetrics {
	m := &promStandingsMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "standings_compute_attempts_total",
			Help: "Number of standings computations.",
		}, []string{"event_id", "mode"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "standings_compute_duration_seconds",
			Help:    "Wall time of one standings computation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"event_id", "mode"}),
	}
	reg.MustRegister(m.attempts, m.duration)
	return m
}

func (m *promStandingsMetrics) RecordComputeAttempt(eventID, mode string) {
	m.attempts.WithLabelValues(eventID, mode).Inc()
}

func (m *promStandingsMetrics) RecordComputeDuration(eventID, mode string, d time.Duration) {
	m.duration.WithLabelValues(eventID, mode).Observe(d.Seconds())
}

// NoOpImportMetrics is used where no registry is wired, mostly in tests.
type NoOpImportMetrics struct{}

func (NoOpImportMetrics) RecordImportAttempt(string)                 {}
func (NoOpImportMetrics) RecordRowsParsed(string, int)               {}
func (NoOpImportMetrics) RecordRowsRejected(string, int)             {}
func (NoOpImportMetrics) RecordUpsertFailure(string)                 {}
func (NoOpImportMetrics) RecordGuestResolved(string)                 {}
func (NoOpImportMetrics) RecordImportDuration(string, time.Duration) {}

// NoOpStandingsMetrics mirrors NoOpImportMetrics for the standings side.
type NoOpStandingsMetrics struct{}

func (NoOpStandingsMetrics) RecordComputeAttempt(string, string)                 {}
func (NoOpStandingsMetrics) RecordComputeDuration(string, string, time.Duration) {}
