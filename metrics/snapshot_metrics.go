package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var SnapshotLatencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120}

// SnapshotMetrics groups metrics of the collection snapshot indexer
type SnapshotMetrics struct {
	RunsTotal       *prometheus.CounterVec
	Duration        prometheus.Histogram
	Entries         prometheus.Gauge
	LastSuccessTime prometheus.Gauge
}

func NewSnapshotMetrics() *SnapshotMetrics {
	return &SnapshotMetrics{
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_snapshot_runs_total",
				Help:        "Total number of collection snapshot runs",
				ConstLabels: constLabels(),
			},
			[]string{"status"}, // "success", "error"
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:        "nftgate_snapshot_duration_seconds",
				Help:        "Time spent building and storing a collection snapshot",
				Buckets:     SnapshotLatencyBuckets,
				ConstLabels: constLabels(),
			},
		),
		Entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "nftgate_snapshot_entries",
				Help:        "Number of entries in the latest stored snapshot",
				ConstLabels: constLabels(),
			},
		),
		LastSuccessTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "nftgate_snapshot_last_success_timestamp_seconds",
				Help:        "Unix time of the last successful snapshot",
				ConstLabels: constLabels(),
			},
		),
	}
}

func (s *SnapshotMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		s.RunsTotal,
		s.Duration,
		s.Entries,
		s.LastSuccessTime,
	)
}

// TrackSnapshot records the outcome of a snapshot run.
func TrackSnapshot(err error, entries int, elapsed time.Duration) {
	if metrics == nil {
		return
	}
	metrics.Snapshot.Duration.Observe(elapsed.Seconds())
	if err != nil {
		metrics.Snapshot.RunsTotal.WithLabelValues("error").Inc()
		return
	}
	metrics.Snapshot.RunsTotal.WithLabelValues("success").Inc()
	metrics.Snapshot.Entries.Set(float64(entries))
	metrics.Snapshot.LastSuccessTime.SetToCurrentTime()
}
