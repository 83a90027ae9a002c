// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultClientCircuitMaxFailures is the default failures before circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default successes to close circuit.
	DefaultClientCircuitHalfOpenLimit = 3

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 100

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultJSONBinBaseURL is the JSONBin API host.
	DefaultJSONBinBaseURL = "https://api.jsonbin.io"

	// DefaultJSONBinBinID identifies the bin holding the quotes document.
	DefaultJSONBinBinID = "694e220dd0ea881f4040cd2a"

	// DefaultJSONBinFilterHeader is the request header JSONBin reads a JSONPath filter from.
	DefaultJSONBinFilterHeader = "X-JSON-Path"
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Screens   ScreensConfig   `koanf:"screens"   validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains HTTP client settings for the quotes document host.
// There is deliberately no retry section: every fetch is a single attempt.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	JSONBin JSONBinConfig `koanf:"jsonbin" validate:"required"`
}

// JSONBinConfig locates the quotes document.
// The defaults are the production bin; overriding them is meant for tests and staging.
type JSONBinConfig struct {
	BaseURL      string `koanf:"base_url"      validate:"required,url"`
	BinID        string `koanf:"bin_id"        validate:"required,alphanum"`
	FilterHeader string `koanf:"filter_header" validate:"required"`
	Name         string `koanf:"name"          validate:"required"`
}

// ScreensConfig contains settings for the HTTP screens.
type ScreensConfig struct {
	// RenderTimeout bounds how long a screen waits for its first fetch before
	// rendering whatever the cache holds.
	RenderTimeout time.Duration `koanf:"render_timeout" validate:"required,min=100ms"`

	// WarmOnStart fetches all quotes and category names once at startup.
	WarmOnStart bool `koanf:"warm_on_start"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quotes-client",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quotes-client.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotes-client",
		"telemetry.sampling_rate": 1.0,

		"client.timeout":                           "10s",
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"services.jsonbin.base_url":      DefaultJSONBinBaseURL,
		"services.jsonbin.bin_id":        DefaultJSONBinBinID,
		"services.jsonbin.filter_header": DefaultJSONBinFilterHeader,
		"services.jsonbin.name":          "jsonbin",

		"screens.render_timeout": "15s",
		"screens.warm_on_start":  true,
	}
}

// ConfigDir is where Load looks for base.yaml and the profile file.
const ConfigDir = "configs"

// Load builds the configuration from four layers, later ones winning:
// built-in defaults, configs/base.yaml, configs/<profile>.yaml, then APP_*
// environment variables. Missing files are skipped.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	files := []string{filepath.Join(ConfigDir, "base.yaml")}
	if profile != "" {
		files = append(files, filepath.Join(ConfigDir, profile+".yaml"))
	}

	for _, path := range files {
		if err := loadFileIfExists(k, path); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("APP_", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// snakeLeaves lists config keys whose final segment contains an underscore.
var snakeLeaves = []string{
	"read_timeout", "write_timeout", "idle_timeout", "shutdown_timeout", "max_request_size",
	"max_size", "max_backups", "max_age", "service_name", "sampling_rate",
	"circuit_breaker", "max_failures", "half_open_limit",
	"max_idle_conns_per_host", "max_idle_conns", "idle_conn_timeout",
	"base_url", "bin_id", "filter_header", "render_timeout", "warm_on_start",
}

// envKey maps APP_SERVER_READ_TIMEOUT to server.read_timeout. Splitting on
// every underscore would break snake_case leaves, so those are protected.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))

	// Longest names first so max_idle_conns_per_host wins over max_idle_conns.
	for _, leaf := range snakeLeaves {
		key = strings.ReplaceAll(key, leaf, strings.ReplaceAll(leaf, "_", "\x00"))
	}

	key = strings.ReplaceAll(key, "_", ".")

	return strings.ReplaceAll(key, "\x00", "_")
}

// loadFileIfExists merges a YAML file into k. A missing file is not an error.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
