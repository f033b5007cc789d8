package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable the worker reads.
const envPrefix = "STRINGSW"

// Load reads configuration from environment variables, applies defaults and
// validates the result. Returns a populated Config or an error describing
// what is missing or malformed.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults double as key registrations: viper only maps environment
	// variables onto keys it knows about.
	v.SetDefault("worker.port", 8080)
	v.SetDefault("worker.log_level", "info")
	v.SetDefault("worker.worker_count", 2)
	v.SetDefault("worker.queue_size", 100)
	v.SetDefault("extract.output_dir", "")
	v.SetDefault("extract.binary", "strings")
	v.SetDefault("extract.poll_interval_seconds", 3)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.mode", "otlp-grpc")
	v.SetDefault("telemetry.otlp_grpc_endpoint", "jaeger:4317")
	v.SetDefault("telemetry.otlp_http_endpoint", "http://jaeger-collector:4318/v1/traces")
	v.SetDefault("telemetry.service_name", "strings-worker")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
