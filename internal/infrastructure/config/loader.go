package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// Load reads defaults, an optional config.yaml and environment variables,
// then validates the result
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		// Without config.yaml we run on env vars and defaults
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.App.BaseURL = strings.TrimRight(config.App.BaseURL, "/")
	config.Aggregation.Topology = strings.ToLower(config.Aggregation.Topology)
	config.Fallback.Mode = strings.ToLower(config.Fallback.Mode)

	if err := NewValidator().Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Load is a convenience wrapper around NewLoader().Load()
func Load() (*Config, error) {
	return NewLoader().Load()
}

// setupViper configures defaults, file search paths and env bindings
func (l *Loader) setupViper() {
	l.setDefaults(GetDefaultConfig())

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(".")
	l.v.AddConfigPath("./config")
	l.v.AddConfigPath("./configs")
	l.v.AddConfigPath("/etc/p2p-volume-tracker")

	// Prefix for env vars: P2P_SERVER_PORT
	l.v.SetEnvPrefix("P2P")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.bindEnvVars()
}

func (l *Loader) setDefaults(d *Config) {
	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	l.v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	l.v.SetDefault("server.write_timeout", d.Server.WriteTimeout)

	l.v.SetDefault("app.base_url", d.App.BaseURL)
	l.v.SetDefault("app.version", d.App.Version)

	l.v.SetDefault("exchange.request_timeout", d.Exchange.RequestTimeout)
	l.v.SetDefault("exchange.max_retries", d.Exchange.MaxRetries)
	l.v.SetDefault("exchange.retry_delay", d.Exchange.RetryDelay)
	l.v.SetDefault("exchange.max_retry_delay", d.Exchange.MaxRetryDelay)
	l.v.SetDefault("exchange.user_agent", d.Exchange.UserAgent)
	l.v.SetDefault("exchange.endpoints.binance", "")
	l.v.SetDefault("exchange.endpoints.bybit", "")
	l.v.SetDefault("exchange.endpoints.okx", "")
	l.v.SetDefault("exchange.endpoints.kucoin", "")

	l.v.SetDefault("aggregation.topology", d.Aggregation.Topology)
	l.v.SetDefault("aggregation.max_concurrency", d.Aggregation.MaxConcurrency)

	l.v.SetDefault("fallback.mode", d.Fallback.Mode)
	l.v.SetDefault("fallback.seed", d.Fallback.Seed)

	l.v.SetDefault("stream.enabled", d.Stream.Enabled)
	l.v.SetDefault("stream.interval", d.Stream.Interval)

	l.v.SetDefault("dashboard.poll_interval", d.Dashboard.PollInterval)
	l.v.SetDefault("dashboard.request_timeout", d.Dashboard.RequestTimeout)

	l.v.SetDefault("logging.level", d.Logging.Level)
	l.v.SetDefault("logging.format", d.Logging.Format)

	l.v.SetDefault("profiling.enabled", d.Profiling.Enabled)
	l.v.SetDefault("profiling.server_address", d.Profiling.ServerAddress)
	l.v.SetDefault("profiling.application_name", d.Profiling.ApplicationName)
}

// bindEnvVars maps unprefixed environment variables kept for compatibility
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":              "PORT",
		"app.base_url":             "NEXT_PUBLIC_API_URL",
		"exchange.request_timeout": "EXCHANGE_REQUEST_TIMEOUT",
		"exchange.max_retries":     "EXCHANGE_MAX_RETRIES",
		"aggregation.topology":     "TOPOLOGY",
		"fallback.mode":            "FALLBACK_MODE",
		"logging.level":            "LOG_LEVEL",
		"logging.format":           "LOG_FORMAT",
		"profiling.enabled":        "PROFILING_ENABLED",
	}

	for configKey, envVar := range envMappings {
		// Keep the prefixed name working alongside the legacy one
		prefixed := "P2P_" + strings.ToUpper(strings.ReplaceAll(configKey, ".", "_"))
		_ = l.v.BindEnv(configKey, prefixed, envVar)
	}
}
