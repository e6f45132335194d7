package metrics

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/husky-nft/nftgate/config"
)

// DBStatsProvider interface for getting database statistics
type DBStatsProvider interface {
	GetDBStats() (*sql.DBStats, error)
}

// Metrics contains all metric groups
type Metrics struct {
	HTTP        *HTTPMetrics
	Database    *DatabaseMetrics
	Snapshot    *SnapshotMetrics
	ExternalAPI *ExternalAPIMetrics
	Error       *ErrorMetrics
}

var (
	registry *prometheus.Registry
	metrics  *Metrics

	dbStatsUpdater *DBStatsUpdater
	dbStatsMu      sync.Mutex

	initOnce sync.Once

	// collection address used as a constant label
	collectionAddr string
)

func constLabels() prometheus.Labels {
	if collectionAddr == "" {
		return nil
	}
	return prometheus.Labels{"collection": collectionAddr}
}

// MetricsServer represents the Prometheus metrics HTTP server
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
	cfg    *config.MetricsConfig
}

// Init initializes the Prometheus registry and registers all metric groups.
// Safe to call multiple times.
func Init(collection string) {
	initOnce.Do(func() {
		collectionAddr = collection
		registry = prometheus.NewRegistry()

		metrics = &Metrics{
			HTTP:        NewHTTPMetrics(),
			Database:    NewDatabaseMetrics(),
			Snapshot:    NewSnapshotMetrics(),
			ExternalAPI: NewExternalAPIMetrics(),
			Error:       NewErrorMetrics(),
		}

		metrics.HTTP.Register(registry)
		metrics.Database.Register(registry)
		metrics.Snapshot.Register(registry)
		metrics.ExternalAPI.Register(registry)
		metrics.Error.Register(registry)

		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// NewServer creates a new metrics server
func NewServer(cfg *config.Config, logger *slog.Logger) *MetricsServer {
	metricsConfig := cfg.GetMetricsConfig()

	if registry == nil || metrics == nil {
		Init(cfg.GetChainConfig().CollectionAddress)
	}

	mux := http.NewServeMux()
	mux.Handle(metricsConfig.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	server := &http.Server{
		Addr:              ":" + metricsConfig.Port,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return &MetricsServer{
		server: server,
		logger: logger.With("component", "metrics"),
		cfg:    metricsConfig,
	}
}

// Start starts the metrics server
func (m *MetricsServer) Start() error {
	if !m.cfg.Enabled {
		m.logger.Info("metrics server disabled")
		return nil
	}

	m.logger.Info("starting metrics server",
		slog.String("addr", m.server.Addr),
		slog.String("path", m.cfg.Path))

	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the metrics server
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	if !m.cfg.Enabled {
		return nil
	}

	m.logger.Info("shutting down metrics server")
	StopDBStatsUpdater()
	return m.server.Shutdown(ctx)
}

// GetMetrics returns the global metrics instance, or nil before Init.
func GetMetrics() *Metrics {
	return metrics
}

// Registry returns the registry used by Init, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// StartDBStatsUpdater starts periodic database statistics collection
func StartDBStatsUpdater(provider DBStatsProvider, logger *slog.Logger) {
	dbStatsMu.Lock()
	defer dbStatsMu.Unlock()
	if dbStatsUpdater != nil || metrics == nil {
		return
	}

	dbStatsUpdater = NewDBStatsUpdater(provider, logger, metrics.Database)
	dbStatsUpdater.Start()
}

// StopDBStatsUpdater stops the database statistics collection
func StopDBStatsUpdater() {
	dbStatsMu.Lock()
	defer dbStatsMu.Unlock()
	if dbStatsUpdater != nil {
		dbStatsUpdater.Stop()
		dbStatsUpdater = nil
	}
}
