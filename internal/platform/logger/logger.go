// Package logger provides structured logging functionality for the worker.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes and configures the worker's logging system. It creates
// a structured JSON logger with the requested log level, sets it as the
// default logger, and returns it.
//
// An unrecognized level falls back to info after emitting a warning through
// a temporary text handler.
func Setup(logLevel string) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", logLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	// Set this logger as the default so slog package functions use it.
	slog.SetDefault(logger)

	return logger
}
