package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics covers the reconciliation worker: sweep accounting plus the
// end-to-end completion lag observed from queue events.
type WorkerMetrics struct {
	registry *prometheus.Registry

	sweepRuns     *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	stuckRecords  *prometheus.CounterVec
	completionLag *prometheus.HistogramVec
}

func NewWorkerMetrics() *WorkerMetrics {
	registry := prometheus.NewRegistry()

	sweepRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfs",
			Subsystem: "worker",
			Name:      "sweep_runs_total",
			Help:      "Total reconciliation sweeps by status.",
		},
		[]string{"service", "status"},
	)
	sweepDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfs",
			Subsystem: "worker",
			Name:      "sweep_duration_seconds",
			Help:      "Reconciliation sweep duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	stuckRecords := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfs",
			Subsystem: "worker",
			Name:      "stuck_records_total",
			Help:      "Total records marked as stuck by the sweep.",
		},
		[]string{"service"},
	)
	completionLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfs",
			Subsystem: "worker",
			Name:      "completion_lag_seconds",
			Help:      "Delay between record creation and the completion event.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service"},
	)

	registry.MustRegister(sweepRuns, sweepDuration, stuckRecords, completionLag)

	return &WorkerMetrics{
		registry:      registry,
		sweepRuns:     sweepRuns,
		sweepDuration: sweepDuration,
		stuckRecords:  stuckRecords,
		completionLag: completionLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) RecordSweep(service, status string, duration time.Duration, marked int) {
	m.sweepRuns.WithLabelValues(service, status).Inc()
	m.sweepDuration.WithLabelValues(service).Observe(duration.Seconds())
	if marked > 0 {
		m.stuckRecords.WithLabelValues(service).Add(float64(marked))
	}
}

func (m *WorkerMetrics) RecordCompletionLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.completionLag.WithLabelValues(service).Observe(lag.Seconds())
}
