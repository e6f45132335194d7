package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPLatencyBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

// HTTPMetrics groups HTTP-related metrics
type HTTPMetrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	ErrorsTotal      *prometheus.CounterVec
	SlowRequests     *prometheus.CounterVec
}

// NewHTTPMetrics creates and returns HTTP metrics
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: constLabels(),
			},
			[]string{"method", "handler", "status_class"}, // status_class: 2xx, 3xx, 4xx, 5xx
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "nftgate_http_request_duration_seconds",
				Help:        "HTTP request duration in seconds",
				Buckets:     HTTPLatencyBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"method", "handler"},
		),
		RequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "nftgate_http_requests_in_flight",
				Help:        "Number of HTTP requests currently being processed",
				ConstLabels: constLabels(),
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_http_errors_total",
				Help:        "Total number of HTTP errors",
				ConstLabels: constLabels(),
			},
			[]string{"handler", "error_type"},
		),
		SlowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_http_slow_requests_total",
				Help:        "Total number of slow requests (>1s)",
				ConstLabels: constLabels(),
			},
			[]string{"method", "handler", "duration_bucket"}, // "1-2s", "2-5s", "5s+"
		),
	}
}

// Register registers all HTTP metrics with the given registry
func (h *HTTPMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		h.RequestsTotal,
		h.RequestDuration,
		h.RequestsInFlight,
		h.ErrorsTotal,
		h.SlowRequests,
	)
}

// RequestStarted bumps the in-flight gauge and returns a func that records the
// finished request.
func RequestStarted(method, path string) func(status int, errType string) {
	if metrics == nil {
		return func(int, string) {}
	}
	start := time.Now()
	metrics.HTTP.RequestsInFlight.Inc()

	return func(status int, errType string) {
		metrics.HTTP.RequestsInFlight.Dec()
		handler := GetHandlerPattern(path)
		elapsed := time.Since(start).Seconds()

		metrics.HTTP.RequestsTotal.WithLabelValues(method, handler, GetStatusClass(status)).Inc()
		metrics.HTTP.RequestDuration.WithLabelValues(method, handler).Observe(elapsed)
		if errType != "" {
			metrics.HTTP.ErrorsTotal.WithLabelValues(handler, errType).Inc()
		}
		if bucket := GetDurationBucket(elapsed); bucket != "" {
			metrics.HTTP.SlowRequests.WithLabelValues(method, handler, bucket).Inc()
		}
	}
}

// GetStatusClass converts HTTP status code to class (2xx, 3xx, 4xx, 5xx)
func GetStatusClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

// GetHandlerPattern collapses a request path into a low-cardinality handler name.
func GetHandlerPattern(path string) string {
	switch {
	case path == "" || path == "/":
		return "root"
	case strings.HasPrefix(path, "/swagger"):
		return "swagger"
	case path == "/health":
		return "health"
	case strings.HasPrefix(path, "/nft/v1/"):
		// /nft/v1/ownership/<wallet> -> ownership
		parts := strings.Split(path, "/")
		if len(parts) >= 4 && parts[3] != "" {
			return parts[3]
		}
		return "nft"
	default:
		return "other"
	}
}

// GetDurationBucket categorizes request duration for slow request tracking
func GetDurationBucket(seconds float64) string {
	switch {
	case seconds < 1:
		return ""
	case seconds < 2:
		return "1-2s"
	case seconds < 5:
		return "2-5s"
	default:
		return "5s+"
	}
}
