package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// namespace prefixes every metric name, e.g. newsdesk_http_requests_total.
const namespace = "newsdesk"

var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests served, by method, normalized path and status code.",
	}, []string{"method", "path", "status"})

	// Buckets span 5ms..10s: handlers are one DB round trip, slow outliers
	// are lock waits or a degraded pool.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http",
		Name:    "request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method", "path", "status"})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http",
		Name:    "request_size_bytes",
		Help:    "Declared request body size.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "http",
		Name:    "response_size_bytes",
		Help:    "Bytes written to the response body.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http",
		Name: "requests_in_flight",
		Help: "Requests currently being served.",
	})

	RateLimitRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "http",
		Name: "rate_limit_rejected_total",
		Help: "Requests refused with 429, by limiter.",
	}, []string{"limiter"})
)

var (
	// result is success, not_found or error.
	NewsOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "news",
		Name: "operations_total",
		Help: "News use case invocations, by operation and result.",
	}, []string{"operation", "result"})

	NewsOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "news",
		Name:    "operation_duration_seconds",
		Help:    "News use case latency, sanitizing and storage included.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

var (
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "db",
		Name:    "query_duration_seconds",
		Help:    "Repository query latency, by operation.",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
	}, []string{"operation"})

	DBConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "db",
		Name: "connections_open",
		Help: "Established connections in the pool.",
	})

	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "db",
		Name: "connections_idle",
		Help: "Idle connections in the pool.",
	})

	// 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "db",
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})
)

var (
	// result is success, unauthenticated or forbidden.
	AuthRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: "auth",
		Name: "requests_total",
		Help: "Admin boundary decisions, by authenticator and result.",
	}, []string{"authenticator", "result"})

	AuthDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: "auth",
		Name:    "duration_seconds",
		Help:    "Time spent authenticating a request.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})
)

// RecordHTTPRequest records one served request. Zero sizes are not observed.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
