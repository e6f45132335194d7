package metrics

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DBLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	RowCountBuckets  = []float64{1, 10, 50, 100, 500, 1000, 5000}
)

// DatabaseMetrics groups database-related metrics
type DatabaseMetrics struct {
	ConnectionsActive  prometheus.Gauge
	ConnectionsIdle    prometheus.Gauge
	ConnectionsMaxOpen prometheus.Gauge
	WaitCount          prometheus.Gauge
	QueriesTotal       *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	RowsAffected       *prometheus.HistogramVec
}

func NewDatabaseMetrics() *DatabaseMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: constLabels()})
	}

	return &DatabaseMetrics{
		ConnectionsActive:  gauge("nftgate_db_connections_active", "Number of active database connections"),
		ConnectionsIdle:    gauge("nftgate_db_connections_idle", "Number of idle database connections"),
		ConnectionsMaxOpen: gauge("nftgate_db_connections_max_open", "Maximum number of open database connections"),
		WaitCount:          gauge("nftgate_db_connections_wait_count", "Cumulative number of connection waits reported by database/sql"),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "nftgate_db_queries_total",
				Help:        "Total number of database queries",
				ConstLabels: constLabels(),
			},
			[]string{"operation", "status"},
		),
		QueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "nftgate_db_query_duration_seconds",
				Help:        "Database query execution time in seconds",
				Buckets:     DBLatencyBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"operation", "table"},
		),
		RowsAffected: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "nftgate_db_rows_affected",
				Help:        "Number of rows affected by database operations",
				Buckets:     RowCountBuckets,
				ConstLabels: constLabels(),
			},
			[]string{"operation"},
		),
	}
}

func (d *DatabaseMetrics) Register(reg *prometheus.Registry) {
	reg.MustRegister(
		d.ConnectionsActive,
		d.ConnectionsIdle,
		d.ConnectionsMaxOpen,
		d.WaitCount,
		d.QueriesTotal,
		d.QueryDuration,
		d.RowsAffected,
	)
}

// TrackDBQuery records a finished statement. rows < 0 skips the rows histogram.
func TrackDBQuery(operation, table, status string, elapsed time.Duration, rows int64) {
	if metrics == nil {
		return
	}
	metrics.Database.QueriesTotal.WithLabelValues(operation, status).Inc()
	metrics.Database.QueryDuration.WithLabelValues(operation, table).Observe(elapsed.Seconds())
	if rows >= 0 {
		metrics.Database.RowsAffected.WithLabelValues(operation).Observe(float64(rows))
	}
}

// DBStatsUpdater periodically copies sql.DBStats into gauges
type DBStatsUpdater struct {
	provider DBStatsProvider
	logger   *slog.Logger
	ticker   *time.Ticker
	done     chan struct{}
	metrics  *DatabaseMetrics
}

func NewDBStatsUpdater(provider DBStatsProvider, logger *slog.Logger, metrics *DatabaseMetrics) *DBStatsUpdater {
	return &DBStatsUpdater{
		provider: provider,
		logger:   logger.With("component", "db_stats"),
		ticker:   time.NewTicker(10 * time.Second),
		done:     make(chan struct{}),
		metrics:  metrics,
	}
}

func (u *DBStatsUpdater) Start() {
	u.logger.Info("starting database stats updater")
	u.updateStats()
	go u.run()
}

func (u *DBStatsUpdater) Stop() {
	u.logger.Info("stopping database stats updater")
	u.ticker.Stop()
	close(u.done)
}

func (u *DBStatsUpdater) run() {
	for {
		select {
		case <-u.ticker.C:
			u.updateStats()
		case <-u.done:
			return
		}
	}
}

func (u *DBStatsUpdater) updateStats() {
	stats, err := u.provider.GetDBStats()
	if err != nil {
		u.logger.Error("failed to get database stats", slog.Any("error", err))
		return
	}

	u.metrics.ConnectionsActive.Set(float64(stats.InUse))
	u.metrics.ConnectionsIdle.Set(float64(stats.Idle))
	u.metrics.ConnectionsMaxOpen.Set(float64(stats.MaxOpenConnections))
	u.metrics.WaitCount.Set(float64(stats.WaitCount))

	u.logger.Debug("updated database stats",
		slog.Int("active", stats.InUse),
		slog.Int("idle", stats.Idle),
		slog.Int64("wait_count", stats.WaitCount))
}
