// Package metrics provides Prometheus instrumentation for the calculation
// service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CalculationsTotal counts calculations, partitioned by quality label.
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "covercall_calculations_total",
		Help: "Total number of calculations performed",
	}, []string{"label"})

	// CalculationDuration tracks end-to-end calculation latency.
	CalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "covercall_calculation_duration_seconds",
		Help:    "Calculation pipeline latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// TechnicalScoresTotal counts technical evaluations, by letter grade.
	TechnicalScoresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "covercall_technical_scores_total",
		Help: "Total number of technical score evaluations",
	}, []string{"grade"})

	// SnapshotSavesTotal counts snapshot writes, by save mode.
	SnapshotSavesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "covercall_snapshot_saves_total",
		Help: "Total number of snapshot saves",
	}, []string{"mode"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "covercall_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "covercall_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "covercall_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the raw path for the label; the route surface is small and
		// fixed, so cardinality stays bounded.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
