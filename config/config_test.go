package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbconfig "github.com/husky-nft/nftgate/orm/config"
	"github.com/husky-nft/nftgate/types"
)

func validChainConfig() *ChainConfig {
	return &ChainConfig{
		RpcUrls:           []string{DefaultRpcUrl},
		Commitment:        DefaultCommitment,
		CollectionAddress: DefaultCollectionAddress,
		CreatorAddress:    DefaultCollectionAddress,
		MetadataProgramId: DefaultMetadataProgramId,
		TokenProgramId:    DefaultTokenProgramId,
		IpfsGateway:       DefaultIpfsGateway,
		ArweaveGateway:    DefaultArweaveGateway,
	}
}

func validConfig() *Config {
	return &Config{
		listenPort:            DefaultAPIPort,
		dbConfig:              &dbconfig.Config{},
		chainConfig:           validChainConfig(),
		logLevel:              "warn",
		logFormat:             "json",
		queryTimeout:          DefaultQueryTimeout,
		fetchTimeout:          DefaultFetchTimeout,
		itemDelay:             DefaultItemDelay,
		maxConcurrentRequests: DefaultMaxConcurrentRequests,
		cacheSize:             DefaultCacheSize,
		cacheTTL:              DefaultCacheTTL,
		snapshotInterval:      DefaultSnapshotInterval,
		metricsConfig:         &MetricsConfig{Enabled: false, Path: DefaultMetricsPath, Port: DefaultMetricsPort},
		corsConfig:            &CORSConfig{Enabled: true, AllowOrigin: []string{"*"}},
		sentryConfig:          &SentryConfig{},
	}
}

func TestConfig_ValidateDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.DBEnabled())
	assert.Nil(t, cfg.GetSentryConfig())
	assert.Equal(t, "json", cfg.GetLogFormat())
}

func TestConfig_ValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"empty port", func(c *Config) { c.listenPort = "" }, "PORT"},
		{"port out of range", func(c *Config) { c.listenPort = "70000" }, "PORT"},
		{"bad log format", func(c *Config) { c.logFormat = "xml" }, "LOG_FORMAT"},
		{"bad log level", func(c *Config) { c.logLevel = "trace" }, "LOG_LEVEL"},
		{"zero query timeout", func(c *Config) { c.queryTimeout = 0 }, "QUERY_TIMEOUT"},
		{"negative item delay", func(c *Config) { c.itemDelay = -time.Millisecond }, "ITEM_DELAY"},
		{"short snapshot interval", func(c *Config) { c.snapshotInterval = time.Second }, "SNAPSHOT_INTERVAL"},
		{"no concurrency", func(c *Config) { c.maxConcurrentRequests = 0 }, "MAX_CONCURRENT_REQUESTS"},
		{"too much concurrency", func(c *Config) { c.maxConcurrentRequests = MaxAllowedConcurrentRequests + 1 }, "MAX_CONCURRENT_REQUESTS"},
		{"metrics port conflict", func(c *Config) {
			c.metricsConfig = &MetricsConfig{Enabled: true, Path: "/metrics", Port: c.listenPort}
		}, "METRICS_PORT"},
		{"metrics path", func(c *Config) {
			c.metricsConfig = &MetricsConfig{Enabled: true, Path: "metrics", Port: "9091"}
		}, "METRICS_PATH"},
		{"missing rpc", func(c *Config) { c.chainConfig.RpcUrls = nil }, "SOLANA_RPC_URLS"},
		{"rpc scheme", func(c *Config) { c.chainConfig.RpcUrls = []string{"ftp://rpc.example"} }, "SOLANA_RPC_URLS"},
		{"commitment", func(c *Config) { c.chainConfig.Commitment = "max" }, "SOLANA_COMMITMENT"},
		{"collection not base58", func(c *Config) { c.chainConfig.CollectionAddress = "not-a-key!" }, "COLLECTION_ADDRESS"},
		{"missing creator", func(c *Config) { c.chainConfig.CreatorAddress = "" }, "CREATOR_ADDRESS"},
		{"ipfs gateway", func(c *Config) { c.chainConfig.IpfsGateway = "" }, "IPFS_GATEWAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfig_DBValidatedOnlyWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.SetDBConfig(&dbconfig.Config{DSN: "", MaxConns: 0})
	require.NoError(t, cfg.Validate())

	cfg.SetDBConfig(&dbconfig.Config{DSN: "postgres://localhost/nftgate", MaxConns: 0, IdleConns: 1, BatchSize: 1})
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, types.Is(err, types.ErrTypeConfig))

	cfg.SetDBConfig(&dbconfig.Config{DSN: "postgres://localhost/nftgate", MaxConns: 4, IdleConns: 1, BatchSize: 1})
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.DBEnabled())
}

func TestChainConfig_Keys(t *testing.T) {
	cc := validChainConfig()
	assert.Equal(t, DefaultCollectionAddress, cc.CollectionKey().String())
	assert.Equal(t, DefaultMetadataProgramId, cc.MetadataProgramKey().String())
	assert.Equal(t, DefaultTokenProgramId, cc.TokenProgramKey().String())
	assert.Equal(t, "confirmed", string(cc.GetCommitment()))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b ,,c "))
	assert.Nil(t, splitList(""))
}

func TestGetLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.logLevel = "debug"
	assert.Equal(t, "DEBUG", cfg.GetLogLevel().String())
	cfg.logLevel = "unknown"
	assert.Equal(t, "WARN", cfg.GetLogLevel().String())
}

func TestSetBuildInfo(t *testing.T) {
	defer SetBuildInfo("dev", "unknown")

	tests := map[string]string{
		"v1.2.3":       "v1.2.3",
		"1.2":          "v1.2.0",
		"v2.0.0-rc.1":  "v2.0.0-rc.1",
		"dev":          "dev",
		"v1.0.0+build": "v1.0.0+build",
	}
	for in, want := range tests {
		SetBuildInfo(in, "abc")
		assert.Equal(t, want, Version, in)
		assert.Equal(t, "abc", CommitHash)
	}
}
