package metrics

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// ErrorMetrics tracks failures that do not surface as HTTP error responses.
type ErrorMetrics struct {
	ErrorsTotal *prometheus.CounterVec
	PanicsTotal *prometheus.CounterVec

	// DegradedTotal counts dashboard views served with a missing section.
	DegradedTotal *prometheus.CounterVec

	ComponentHealth *prometheus.GaugeVec
}

func NewErrorMetrics() *ErrorMetrics {
	return &ErrorMetrics{
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_errors_total",
				Help:        "Errors by component and stage",
				ConstLabels: constLabels(),
			},
			[]string{"component", "error_type"},
		),
		PanicsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_recovered_panics_total",
				Help:        "Panics recovered and converted into errors",
				ConstLabels: constLabels(),
			},
			[]string{"component"},
		),
		DegradedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_degraded_views_total",
				Help:        "Dashboard views served without the owned nft or the collection",
				ConstLabels: constLabels(),
			},
			[]string{"section"},
		),
		ComponentHealth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "nftgate_component_health",
				Help:        "Whether the last run of a component succeeded (1) or failed (0)",
				ConstLabels: constLabels(),
			},
			[]string{"component"},
		),
	}
}

func (e *ErrorMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		e.ErrorsTotal,
		e.PanicsTotal,
		e.DegradedTotal,
		e.ComponentHealth,
	)
}

func TrackError(component, errorType string) {
	if metrics == nil {
		return
	}
	metrics.Error.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// TrackDegraded records a dashboard view missing section ("nft" or "collection").
func TrackDegraded(section string) {
	if metrics == nil {
		return
	}
	metrics.Error.DegradedTotal.WithLabelValues(section).Inc()
}

func SetComponentHealth(component string, healthy bool) {
	if metrics == nil {
		return
	}
	var status float64
	if healthy {
		status = 1
	}
	metrics.Error.ComponentHealth.WithLabelValues(component).Set(status)
}

// RecoverAsError turns a panic in the calling function into *err so that a
// long-running loop survives it. Use with defer.
func RecoverAsError(component string, err *error) {
	r := recover()
	if r == nil {
		return
	}

	caller := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			caller = fn.Name()
		}
	}

	if metrics != nil {
		metrics.Error.PanicsTotal.WithLabelValues(component).Inc()
	}
	TrackError(component, "panic")
	*err = fmt.Errorf("recovered panic in %s: %v", caller, r)
}
