package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/mod/semver"

	dbconfig "github.com/husky-nft/nftgate/orm/config"
	"github.com/husky-nft/nftgate/types"
)

var (
	Version    = "dev"
	CommitHash = "unknown"

	// Singleton instance
	configInstance *Config
	configOnce     sync.Once
)

// Default configuration constants
const (
	// Port settings
	DefaultAPIPort     = "8080"
	DefaultMetricsPort = "9090"
	MinPortNumber      = 1
	MaxPortNumber      = 65535

	// Database settings
	DefaultDBMaxConns  = 10
	DefaultDBIdleConns = 2
	DefaultDBBatchSize = 100

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 10 * time.Minute

	// Timeout and interval settings
	DefaultQueryTimeout     = 30 * time.Second
	DefaultFetchTimeout     = 10 * time.Second
	DefaultItemDelay        = 100 * time.Millisecond
	DefaultSnapshotInterval = 10 * time.Minute

	// Concurrent request settings
	DefaultMaxConcurrentRequests = 50
	MaxAllowedConcurrentRequests = 1000

	// Metrics settings
	DefaultMetricsPath = "/metrics"

	// Default environment
	DefaultEnvironment = "local"
)

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
	Port    string `json:"port"`
}

// CORSConfig controls which browser origins may call the API.
type CORSConfig struct {
	Enabled          bool     `json:"enabled"`
	AllowOrigin      []string `json:"allow_origin"`
	AllowMethods     []string `json:"allow_methods"`
	AllowHeaders     []string `json:"allow_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	ExposeHeaders    []string `json:"expose_headers"`
	MaxAge           int      `json:"max_age"`
}

// SentryConfig contains configuration for Sentry integration
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	SampleRate       float64 `json:"sample_rate"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Environment      string  `json:"environment"`
}

// SetBuildInfo records the release version and commit. Release tags given
// without the leading "v" are canonicalized, so "1.2" becomes "v1.2.0".
func SetBuildInfo(v, commit string) {
	if !semver.IsValid(v) && semver.IsValid("v"+v) {
		v = "v" + v
	}
	if semver.IsValid(v) {
		v = semver.Canonical(v) + semver.Build(v)
	}
	Version = v
	CommitHash = commit
}

type Config struct {
	listenPort            string
	dbConfig              *dbconfig.Config
	chainConfig           *ChainConfig
	logLevel              string
	logFormat             string
	queryTimeout          time.Duration
	fetchTimeout          time.Duration
	itemDelay             time.Duration
	maxConcurrentRequests int
	cacheSize             int
	cacheTTL              time.Duration
	snapshotInterval      time.Duration // for indexer only
	metricsConfig         *MetricsConfig
	corsConfig            *CORSConfig
	sentryConfig          *SentryConfig
}

func setDefaults() {
	viper.SetDefault("PORT", DefaultAPIPort)
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("DB_BATCH_SIZE", DefaultDBBatchSize)
	viper.SetDefault("DB_MAX_CONNS", DefaultDBMaxConns)
	viper.SetDefault("DB_IDLE_CONNS", DefaultDBIdleConns)
	viper.SetDefault("SOLANA_RPC_URLS", DefaultRpcUrl)
	viper.SetDefault("SOLANA_COMMITMENT", DefaultCommitment)
	viper.SetDefault("COLLECTION_ADDRESS", DefaultCollectionAddress)
	viper.SetDefault("METADATA_PROGRAM_ID", DefaultMetadataProgramId)
	viper.SetDefault("TOKEN_PROGRAM_ID", DefaultTokenProgramId)
	viper.SetDefault("IPFS_GATEWAY", DefaultIpfsGateway)
	viper.SetDefault("ARWEAVE_GATEWAY", DefaultArweaveGateway)
	viper.SetDefault("QUERY_TIMEOUT", DefaultQueryTimeout)
	viper.SetDefault("FETCH_TIMEOUT", DefaultFetchTimeout)
	viper.SetDefault("ITEM_DELAY", DefaultItemDelay)
	viper.SetDefault("MAX_CONCURRENT_REQUESTS", DefaultMaxConcurrentRequests)
	viper.SetDefault("LOG_LEVEL", "warn")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("CACHE_SIZE", DefaultCacheSize)
	viper.SetDefault("CACHE_TTL", DefaultCacheTTL)
	viper.SetDefault("SNAPSHOT_INTERVAL", DefaultSnapshotInterval)
	viper.SetDefault("METRICS_ENABLED", false)
	viper.SetDefault("METRICS_PATH", DefaultMetricsPath)
	viper.SetDefault("METRICS_PORT", DefaultMetricsPort)
	viper.SetDefault("ENVIRONMENT", DefaultEnvironment)

	// CORS defaults
	viper.SetDefault("CORS_ENABLED", true)
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")
	viper.SetDefault("CORS_ALLOW_METHODS", "GET,OPTIONS")
	viper.SetDefault("CORS_ALLOW_HEADERS", "Origin,Content-Type,Accept")
	viper.SetDefault("CORS_ALLOW_CREDENTIALS", false)
	viper.SetDefault("CORS_EXPOSE_HEADERS", "")
	viper.SetDefault("CORS_MAX_AGE", 0)

	// Sentry defaults
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("SENTRY_SAMPLE_RATE", 0.01)
	viper.SetDefault("SENTRY_TRACES_SAMPLE_RATE", 0.01)
}

func GetConfig() (*Config, error) {
	var err error

	configOnce.Do(func() {
		configInstance, err = loadConfig()
	})

	return configInstance, err
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// just log without panic, local testing purpose only
		fmt.Fprintln(os.Stderr, "No .env file found")
	}
	viper.AutomaticEnv()
	setDefaults()

	dc := &dbconfig.Config{
		DSN:         viper.GetString("DB_DSN"),
		AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		MaxConns:    viper.GetInt("DB_MAX_CONNS"),
		IdleConns:   viper.GetInt("DB_IDLE_CONNS"),
		BatchSize:   viper.GetInt("DB_BATCH_SIZE"),
	}

	collection := viper.GetString("COLLECTION_ADDRESS")
	creator := viper.GetString("CREATOR_ADDRESS")
	if creator == "" {
		// the original collection was minted and held by its collection authority
		creator = collection
	}

	cc := &ChainConfig{
		RpcUrls:           splitList(viper.GetString("SOLANA_RPC_URLS")),
		Commitment:        viper.GetString("SOLANA_COMMITMENT"),
		CollectionAddress: collection,
		CreatorAddress:    creator,
		MetadataProgramId: viper.GetString("METADATA_PROGRAM_ID"),
		TokenProgramId:    viper.GetString("TOKEN_PROGRAM_ID"),
		IpfsGateway:       strings.TrimRight(viper.GetString("IPFS_GATEWAY"), "/"),
		ArweaveGateway:    strings.TrimRight(viper.GetString("ARWEAVE_GATEWAY"), "/"),
		Environment:       viper.GetString("ENVIRONMENT"),
	}

	config := &Config{
		listenPort:            viper.GetString("PORT"),
		dbConfig:              dc,
		chainConfig:           cc,
		logLevel:              viper.GetString("LOG_LEVEL"),
		logFormat:             viper.GetString("LOG_FORMAT"),
		queryTimeout:          viper.GetDuration("QUERY_TIMEOUT"),
		fetchTimeout:          viper.GetDuration("FETCH_TIMEOUT"),
		itemDelay:             viper.GetDuration("ITEM_DELAY"),
		maxConcurrentRequests: viper.GetInt("MAX_CONCURRENT_REQUESTS"),
		cacheSize:             viper.GetInt("CACHE_SIZE"),
		cacheTTL:              viper.GetDuration("CACHE_TTL"),
		snapshotInterval:      viper.GetDuration("SNAPSHOT_INTERVAL"),
		metricsConfig: &MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
			Port:    viper.GetString("METRICS_PORT"),
		},
		corsConfig: &CORSConfig{
			Enabled:          viper.GetBool("CORS_ENABLED"),
			AllowOrigin:      splitList(viper.GetString("CORS_ALLOW_ORIGINS")),
			AllowMethods:     splitList(viper.GetString("CORS_ALLOW_METHODS")),
			AllowHeaders:     splitList(viper.GetString("CORS_ALLOW_HEADERS")),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			ExposeHeaders:    splitList(viper.GetString("CORS_EXPOSE_HEADERS")),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		sentryConfig: &SentryConfig{
			DSN:              viper.GetString("SENTRY_DSN"),
			SampleRate:       viper.GetFloat64("SENTRY_SAMPLE_RATE"),
			TracesSampleRate: viper.GetFloat64("SENTRY_TRACES_SAMPLE_RATE"),
			Environment:      viper.GetString("ENVIRONMENT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c Config) GetListenPort() string {
	return c.listenPort
}

// SetDBConfig assigns the DB config for testing purposes.
func (c *Config) SetDBConfig(dbCfg *dbconfig.Config) {
	c.dbConfig = dbCfg
}

func (c Config) GetDBConfig() *dbconfig.Config {
	return c.dbConfig
}

// SetChainConfig assigns the chain config for testing purposes.
func (c *Config) SetChainConfig(chainCfg *ChainConfig) {
	c.chainConfig = chainCfg
}

func (c Config) GetChainConfig() *ChainConfig {
	return c.chainConfig
}

// SetCORSConfig assigns the CORS config for testing purposes.
func (c *Config) SetCORSConfig(corsCfg *CORSConfig) {
	c.corsConfig = corsCfg
}

func (c Config) GetCORSConfig() *CORSConfig {
	return c.corsConfig
}

// SetServiceSettings assigns the fetch tuning knobs for testing purposes.
func (c *Config) SetServiceSettings(queryTimeout, fetchTimeout, itemDelay time.Duration, maxConcurrent, cacheSize int, cacheTTL time.Duration) {
	c.queryTimeout = queryTimeout
	c.fetchTimeout = fetchTimeout
	c.itemDelay = itemDelay
	c.maxConcurrentRequests = maxConcurrent
	c.cacheSize = cacheSize
	c.cacheTTL = cacheTTL
}

func (c Config) DBEnabled() bool {
	return c.dbConfig != nil && c.dbConfig.Enabled()
}

func (c Config) GetCacheSize() int {
	return c.cacheSize
}

func (c Config) GetCacheTTL() time.Duration {
	return c.cacheTTL
}

func (c Config) GetQueryTimeout() time.Duration {
	return c.queryTimeout
}

func (c Config) GetFetchTimeout() time.Duration {
	return c.fetchTimeout
}

func (c Config) GetItemDelay() time.Duration {
	return c.itemDelay
}

func (c Config) GetMaxConcurrentRequests() int {
	return c.maxConcurrentRequests
}

func (c Config) GetSnapshotInterval() time.Duration {
	return c.snapshotInterval
}

func (c Config) GetMetricsConfig() *MetricsConfig {
	return c.metricsConfig
}

func (c Config) GetSentryConfig() *SentryConfig {
	if c.sentryConfig == nil || c.sentryConfig.DSN == "" {
		return nil
	}
	return c.sentryConfig
}

func (c Config) GetLogLevel() slog.Level {
	switch c.logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (c Config) GetLogFormat() string {
	if c.logFormat == "json" {
		return "json"
	}
	return "plain"
}

func (c Config) Validate() error {
	if err := c.validatePort(); err != nil {
		return err
	}
	if err := c.validateLogSettings(); err != nil {
		return err
	}
	if err := c.validateNumericSettings(); err != nil {
		return err
	}
	if err := c.validateMetricsConfig(); err != nil {
		return err
	}
	if err := c.validateSubConfigs(); err != nil {
		return err
	}
	return nil
}

// validatePort validates the listen port configuration
func (c Config) validatePort() error {
	if len(c.listenPort) == 0 {
		return types.NewValidationError("PORT", "required field is missing")
	}
	if port, err := strconv.Atoi(c.listenPort); err != nil || port < MinPortNumber || port > MaxPortNumber {
		return types.NewValidationError("PORT", fmt.Sprintf("must be a valid port number (%d-%d)", MinPortNumber, MaxPortNumber))
	}
	return nil
}

// validateLogSettings validates log format and level configuration
func (c Config) validateLogSettings() error {
	switch c.logFormat {
	case "json", "plain":
		break
	default:
		return types.NewValidationError("LOG_FORMAT", fmt.Sprintf("invalid value '%s', must be 'json' or 'plain'", c.logFormat))
	}

	switch c.logLevel {
	case "debug", "info", "warn", "error":
		break
	default:
		return types.NewValidationError("LOG_LEVEL", fmt.Sprintf("invalid value '%s', must be one of: debug, info, warn, error", c.logLevel))
	}
	return nil
}

// validateNumericSettings validates all numeric configuration values
func (c Config) validateNumericSettings() error {
	if c.cacheSize < 1 {
		return types.NewValidationError("CACHE_SIZE", "must be at least 1")
	}
	if c.cacheTTL < 0 {
		return types.NewValidationError("CACHE_TTL", "must be non-negative")
	}
	if c.queryTimeout <= 0 {
		return types.NewValidationError("QUERY_TIMEOUT", "must be positive")
	}
	if c.fetchTimeout <= 0 {
		return types.NewValidationError("FETCH_TIMEOUT", "must be positive")
	}
	if c.itemDelay < 0 {
		return types.NewValidationError("ITEM_DELAY", "must be non-negative")
	}
	if c.snapshotInterval < types.MinSnapshotInterval {
		return types.NewValidationError("SNAPSHOT_INTERVAL", fmt.Sprintf("must be at least %s", types.MinSnapshotInterval))
	}
	if c.maxConcurrentRequests < 1 {
		return types.NewValidationError("MAX_CONCURRENT_REQUESTS", "must be at least 1")
	}
	if c.maxConcurrentRequests > MaxAllowedConcurrentRequests {
		return types.NewInvalidValueError("MAX_CONCURRENT_REQUESTS", fmt.Sprintf("%d", c.maxConcurrentRequests), fmt.Sprintf("must not exceed %d", MaxAllowedConcurrentRequests))
	}
	return nil
}

// validateMetricsConfig validates metrics configuration
func (c Config) validateMetricsConfig() error {
	if c.metricsConfig == nil || !c.metricsConfig.Enabled {
		return nil
	}
	if port, err := strconv.Atoi(c.metricsConfig.Port); err != nil || port < MinPortNumber || port > MaxPortNumber {
		return types.NewValidationError("METRICS_PORT", fmt.Sprintf("must be a valid port number (%d-%d)", MinPortNumber, MaxPortNumber))
	}
	if c.metricsConfig.Port == c.listenPort {
		return types.NewValidationError("METRICS_PORT", fmt.Sprintf("metrics port %s conflicts with API port", c.metricsConfig.Port))
	}
	if c.metricsConfig.Path == "" || c.metricsConfig.Path[0] != '/' {
		return types.NewValidationError("METRICS_PATH", "must start with '/'")
	}
	return nil
}

// validateSubConfigs validates nested configuration objects
func (c Config) validateSubConfigs() error {
	if c.dbConfig != nil {
		if err := c.dbConfig.Validate(); err != nil {
			return types.NewConfigError("invalid database config", err)
		}
	}
	if c.chainConfig == nil {
		return types.NewValidationError("chain", "configuration is missing")
	}
	if err := c.chainConfig.Validate(); err != nil {
		return err
	}
	return nil
}
