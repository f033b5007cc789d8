package config

import "time"

// Config holds all worker configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Worker    WorkerConfig    `mapstructure:"worker"    validate:"required"`
	Extract   ExtractConfig   `mapstructure:"extract"   validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" validate:"required"`
}

// WorkerConfig contains the task-runtime and HTTP settings.
type WorkerConfig struct {
	Port        int    `mapstructure:"port"         validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level"    validate:"required,oneof=debug info warn error"`
	WorkerCount int    `mapstructure:"worker_count" validate:"required,gt=0"`
	QueueSize   int    `mapstructure:"queue_size"   validate:"required,gt=0"`
}

// ExtractConfig contains the extraction-specific settings.
type ExtractConfig struct {
	// OutputDir is the directory on shared storage where output files
	// are written. It has no default: every deployment must point it at
	// the pipeline's shared volume.
	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// Binary is the strings utility to invoke.
	Binary string `mapstructure:"binary" validate:"required"`

	// PollIntervalSeconds is the progress sampling interval.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
}

// PollInterval returns the sampling interval as a duration.
func (c ExtractConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// TelemetryConfig contains the trace exporter settings.
type TelemetryConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Mode             string `mapstructure:"mode"               validate:"required,oneof=otlp-grpc otlp-http"`
	OTLPGRPCEndpoint string `mapstructure:"otlp_grpc_endpoint" validate:"required"`
	OTLPHTTPEndpoint string `mapstructure:"otlp_http_endpoint" validate:"required"`
	ServiceName      string `mapstructure:"service_name"       validate:"required"`
}
