package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics carries the API service's Prometheus instruments: generic
// HTTP request accounting plus pipeline and chat observations.
type ServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	pipelineTotal    *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	chatTotal        *prometheus.CounterVec
	chatDuration     *prometheus.HistogramVec
}

func NewServerMetrics(service string) *ServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfs",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfs",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sfs",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pipelineTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfs",
			Subsystem: "pipeline",
			Name:      "files_total",
			Help:      "Total pipeline runs by result.",
		},
		[]string{"service", "result"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfs",
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Pipeline run duration in seconds by result.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "result"},
	)
	chatTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sfs",
			Subsystem: "chat",
			Name:      "queries_total",
			Help:      "Total chat queries by result.",
		},
		[]string{"service", "result"},
	)
	chatDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sfs",
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Chat query duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		pipelineTotal,
		pipelineDuration,
		chatTotal,
		chatDuration,
	)

	return &ServerMetrics{
		registry:         registry,
		requestTotal:     requestTotal,
		requestDuration:  requestDuration,
		requestInFlight:  requestInFlight,
		pipelineTotal:    pipelineTotal,
		pipelineDuration: pipelineDuration,
		chatTotal:        chatTotal,
		chatDuration:     chatDuration,
	}
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func (m *ServerMetrics) RecordPipelineRun(service, result string, duration time.Duration) {
	if result == "" {
		result = "unknown"
	}
	m.pipelineTotal.WithLabelValues(service, result).Inc()
	m.pipelineDuration.WithLabelValues(service, result).Observe(duration.Seconds())
}

func (m *ServerMetrics) RecordChatQuery(service, result string, duration time.Duration) {
	if result == "" {
		result = "unknown"
	}
	m.chatTotal.WithLabelValues(service, result).Inc()
	m.chatDuration.WithLabelValues(service).Observe(duration.Seconds())
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/files/"):
		return "/api/files/{file_id}"
	case strings.HasPrefix(path, "/api/chat/history/"):
		return "/api/chat/history/{file_id}"
	default:
		return path
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
