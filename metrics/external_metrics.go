package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var LatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// ExternalAPIMetrics covers Solana RPC calls and off-chain metadata fetches.
// The target label is a fixed operation name, never a full URL.
type ExternalAPIMetrics struct {
	RequestsTotal      *prometheus.CounterVec
	Latency            *prometheus.HistogramVec
	RetriesTotal       *prometheus.CounterVec
	RateLimitHitsTotal *prometheus.CounterVec
	EndpointHealthy    *prometheus.GaugeVec
	CacheLookupsTotal  *prometheus.CounterVec
}

func NewExternalAPIMetrics() *ExternalAPIMetrics {
	return &ExternalAPIMetrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_external_requests_total",
				Help:        "Total number of outbound RPC and metadata requests",
				ConstLabels: constLabels(),
			},
			[]string{"target", "status"},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "nftgate_external_request_latency_seconds",
				Help:        "Outbound request latency in seconds",
				Buckets:     LatencyBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"target"},
		),
		RetriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_external_retries_total",
				Help:        "Total number of retried outbound requests",
				ConstLabels: constLabels(),
			},
			[]string{"target"},
		),
		RateLimitHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_rate_limit_hits_total",
				Help:        "Total number of rate limit hits (429 errors)",
				ConstLabels: constLabels(),
			},
			[]string{"target"},
		),
		EndpointHealthy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "nftgate_rpc_endpoint_healthy",
				Help:        "RPC endpoint circuit state (1=healthy, 0=open)",
				ConstLabels: constLabels(),
			},
			[]string{"endpoint"},
		),
		CacheLookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_cache_lookups_total",
				Help:        "Cache lookups by cache name and result",
				ConstLabels: constLabels(),
			},
			[]string{"cache", "result"},
		),
	}
}

func (e *ExternalAPIMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		e.RequestsTotal,
		e.Latency,
		e.RetriesTotal,
		e.RateLimitHitsTotal,
		e.EndpointHealthy,
		e.CacheLookupsTotal,
	)
}

// TrackExternalRequest records one outbound request. status is an HTTP code or "error".
func TrackExternalRequest(target, status string, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.ExternalAPI.RequestsTotal.WithLabelValues(target, status).Inc()
	metrics.ExternalAPI.Latency.WithLabelValues(target).Observe(elapsed.Seconds())
}

func TrackExternalStatus(target string, code int, elapsed time.Duration) {
	TrackExternalRequest(target, strconv.Itoa(code), elapsed)
}

func TrackRetry(target string) {
	if metrics == nil {
		return
	}
	metrics.ExternalAPI.RetriesTotal.WithLabelValues(target).Inc()
}

func TrackRateLimit(target string) {
	if metrics == nil {
		return
	}
	metrics.ExternalAPI.RateLimitHitsTotal.WithLabelValues(target).Inc()
}

func SetEndpointHealth(endpoint string, healthy bool) {
	if metrics == nil {
		return
	}
	var v float64
	if healthy {
		v = 1
	}
	metrics.ExternalAPI.EndpointHealthy.WithLabelValues(endpoint).Set(v)
}

func TrackCacheLookup(cache string, hit bool) {
	if metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.ExternalAPI.CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}
