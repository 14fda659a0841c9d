package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateApp(config.App); err != nil {
		return fmt.Errorf("app config validation failed: %w", err)
	}

	if err := v.validateExchange(config.Exchange); err != nil {
		return fmt.Errorf("exchange config validation failed: %w", err)
	}

	if err := v.validateAggregation(config.Aggregation); err != nil {
		return fmt.Errorf("aggregation config validation failed: %w", err)
	}

	if err := v.validateFallback(config.Fallback); err != nil {
		return fmt.Errorf("fallback config validation failed: %w", err)
	}

	if err := v.validateIntervals(config.Stream, config.Dashboard); err != nil {
		return fmt.Errorf("interval config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	if config.Profiling.Enabled {
		if err := v.validateURL(config.Profiling.ServerAddress, "profiling server_address"); err != nil {
			return fmt.Errorf("profiling config validation failed: %w", err)
		}
	}

	return nil
}

func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	return nil
}

func (v *Validator) validateApp(config AppConfig) error {
	return v.validateURL(config.BaseURL, "app base_url")
}

// validateExchange valida timeouts, retries y URLs de los proveedores
func (v *Validator) validateExchange(config ExchangeConfig) error {
	if config.RequestTimeout <= 0 {
		return fmt.Errorf("exchange request_timeout must be positive, got: %v", config.RequestTimeout)
	}

	if config.RequestTimeout > time.Minute {
		return fmt.Errorf("exchange request_timeout too long: %v, max 1 minute", config.RequestTimeout)
	}

	if config.MaxRetries < 0 || config.MaxRetries > 5 {
		return fmt.Errorf("exchange max_retries must be between 0-5, got: %d", config.MaxRetries)
	}

	if config.MaxRetries > 0 && config.RetryDelay <= 0 {
		return fmt.Errorf("exchange retry_delay must be positive when retries are enabled, got: %v", config.RetryDelay)
	}

	endpoints := map[string]string{
		"binance": config.Endpoints.Binance,
		"bybit":   config.Endpoints.Bybit,
		"okx":     config.Endpoints.OKX,
		"kucoin":  config.Endpoints.KuCoin,
	}
	for name, endpoint := range endpoints {
		// Empty means the provider's public endpoint
		if endpoint == "" {
			continue
		}
		if err := v.validateURL(endpoint, "exchange endpoints."+name); err != nil {
			return err
		}
	}

	return nil
}

func (v *Validator) validateAggregation(config AggregationConfig) error {
	validTopologies := []string{TopologySingle, TopologyDual}
	if !contains(validTopologies, config.Topology) {
		return fmt.Errorf("invalid topology: %s, must be one of: %v", config.Topology, validTopologies)
	}

	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency cannot be negative, got: %d", config.MaxConcurrency)
	}

	return nil
}

func (v *Validator) validateFallback(config FallbackConfig) error {
	validModes := []string{FallbackAbsent, FallbackSynthetic}
	if !contains(validModes, config.Mode) {
		return fmt.Errorf("invalid fallback mode: %s, must be one of: %v", config.Mode, validModes)
	}
	return nil
}

func (v *Validator) validateIntervals(stream StreamConfig, dashboard DashboardConfig) error {
	if stream.Enabled && stream.Interval < time.Second {
		return fmt.Errorf("stream interval too short: %v, min 1s", stream.Interval)
	}

	if dashboard.PollInterval < time.Second {
		return fmt.Errorf("dashboard poll_interval too short: %v, min 1s", dashboard.PollInterval)
	}

	if dashboard.RequestTimeout <= 0 {
		return fmt.Errorf("dashboard request_timeout must be positive, got: %v", dashboard.RequestTimeout)
	}

	return nil
}

func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(config.Level)) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(config.Format)) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
