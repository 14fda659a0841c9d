package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	App         AppConfig         `yaml:"app" mapstructure:"app"`
	Exchange    ExchangeConfig    `yaml:"exchange" mapstructure:"exchange"`
	Aggregation AggregationConfig `yaml:"aggregation" mapstructure:"aggregation"`
	Fallback    FallbackConfig    `yaml:"fallback" mapstructure:"fallback"`
	Stream      StreamConfig      `yaml:"stream" mapstructure:"stream"`
	Dashboard   DashboardConfig   `yaml:"dashboard" mapstructure:"dashboard"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Profiling   ProfilingConfig   `yaml:"profiling" mapstructure:"profiling"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// AppConfig contains deployment-level settings
type AppConfig struct {
	// BaseURL is where this service is reachable; the dashboard polls it
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Version string `yaml:"version" mapstructure:"version"`
}

// ExchangeConfig contains upstream P2P API configuration
type ExchangeConfig struct {
	RequestTimeout time.Duration   `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxRetries     int             `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelay     time.Duration   `yaml:"retry_delay" mapstructure:"retry_delay"`
	MaxRetryDelay  time.Duration   `yaml:"max_retry_delay" mapstructure:"max_retry_delay"`
	UserAgent      string          `yaml:"user_agent" mapstructure:"user_agent"`
	Endpoints      EndpointsConfig `yaml:"endpoints" mapstructure:"endpoints"`
}

// EndpointsConfig overrides the public endpoint of each provider
type EndpointsConfig struct {
	Binance string `yaml:"binance" mapstructure:"binance"`
	Bybit   string `yaml:"bybit" mapstructure:"bybit"`
	OKX     string `yaml:"okx" mapstructure:"okx"`
	KuCoin  string `yaml:"kucoin" mapstructure:"kucoin"`
}

// AggregationConfig selects the tracked pairs
type AggregationConfig struct {
	// Topology is "single" (4 providers x USDC) or "dual" (adds Binance/Bybit x USDT)
	Topology       string `yaml:"topology" mapstructure:"topology"`
	MaxConcurrency int    `yaml:"max_concurrency" mapstructure:"max_concurrency"`
}

// FallbackConfig controls placeholder data for providers without a public endpoint
type FallbackConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
	Seed int64  `yaml:"seed" mapstructure:"seed"`
}

// StreamConfig controls the WebSocket snapshot stream
type StreamConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DashboardConfig controls the terminal dashboard client
type DashboardConfig struct {
	PollInterval   time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ProfilingConfig enables continuous profiling via Pyroscope
type ProfilingConfig struct {
	Enabled         bool   `yaml:"enabled" mapstructure:"enabled"`
	ServerAddress   string `yaml:"server_address" mapstructure:"server_address"`
	ApplicationName string `yaml:"application_name" mapstructure:"application_name"`
}

const (
	TopologySingle = "single"
	TopologyDual   = "dual"

	FallbackAbsent    = "absent"
	FallbackSynthetic = "synthetic"
)

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3001,
			ShutdownTimeout: 30 * time.Second,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
		},
		App: AppConfig{
			BaseURL: "http://localhost:3001",
			Version: "1.0.0",
		},
		Exchange: ExchangeConfig{
			RequestTimeout: 5 * time.Second,
			MaxRetries:     0,
			RetryDelay:     200 * time.Millisecond,
			MaxRetryDelay:  2 * time.Second,
			UserAgent:      "p2p-volume-tracker/1.0",
		},
		Aggregation: AggregationConfig{
			Topology:       TopologyDual,
			MaxConcurrency: 0,
		},
		Fallback: FallbackConfig{
			Mode: FallbackAbsent,
			Seed: 0,
		},
		Stream: StreamConfig{
			Enabled:  true,
			Interval: 30 * time.Second,
		},
		Dashboard: DashboardConfig{
			PollInterval:   30 * time.Second,
			RequestTimeout: 20 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Profiling: ProfilingConfig{
			Enabled:         false,
			ServerAddress:   "http://localhost:4040",
			ApplicationName: "p2p-volume-tracker",
		},
	}
}
