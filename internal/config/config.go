// Package config loads the API server configuration: built-in defaults, then
// an optional YAML file, then environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"go-chi-compute/internal/compute"
)

// PathEnv names the variable holding the optional YAML config path.
const PathEnv = "COMPUTE_CONFIG"

// Default values.
const (
	DefaultAddr            = ":8080"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 5 * time.Second
)

type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" env:"COMPUTE_ADDR"`

	// LogLevel is one of debug | info | warn | error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"COMPUTE_SHUTDOWN_TIMEOUT"`

	Engines   EnginesConfig   `yaml:"engines"`
	Service   ServiceConfig   `yaml:"service"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	CORS      CORSConfig      `yaml:"cors"`
}

// EnginesConfig names the calculator and processor instances. Names are
// fixed for the life of the process.
type EnginesConfig struct {
	CalculatorName string `yaml:"calculator_name" env:"COMPUTE_CALCULATOR_NAME"`
	ProcessorName  string `yaml:"processor_name" env:"COMPUTE_PROCESSOR_NAME"`
}

// ServiceConfig overrides the metadata reported by /version. Empty fields are
// resolved from build information.
type ServiceConfig struct {
	Name    string `yaml:"name" env:"OTEL_SERVICE_NAME"`
	Version string `yaml:"version" env:"COMPUTE_VERSION"`
	Author  string `yaml:"author" env:"COMPUTE_AUTHOR"`
}

// TelemetryConfig toggles the OTLP exporters.
type TelemetryConfig struct {
	Traces  bool `yaml:"traces" env:"COMPUTE_TRACES"`
	Metrics bool `yaml:"metrics" env:"COMPUTE_METRICS"`
	Logs    bool `yaml:"logs" env:"COMPUTE_LOGS"`
}

// CORSConfig enables cross-origin requests. No origins means no CORS
// headers are sent.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"COMPUTE_CORS_ORIGINS" envSeparator:","`
	MaxAge         int      `yaml:"max_age" env:"COMPUTE_CORS_MAX_AGE"`
}

// Load builds the configuration. An empty path skips the YAML layer.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// FromEnv loads the file named by COMPUTE_CONFIG, if any.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(PathEnv))
}

func defaults() *Config {
	return &Config{
		Addr:            DefaultAddr,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		Engines: EnginesConfig{
			CalculatorName: compute.DefaultName,
			ProcessorName:  compute.DefaultName,
		},
		Telemetry: TelemetryConfig{
			Traces:  true,
			Metrics: true,
		},
		CORS: CORSConfig{
			MaxAge: 300,
		},
	}
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level %q unknown: want debug|info|warn|error", cfg.LogLevel)
	}
	if cfg.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must not be negative, got %d", cfg.CORS.MaxAge)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %v", cfg.ShutdownTimeout)
	}
	return nil
}
