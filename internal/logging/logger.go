// Package logging configures structured logging with log/slog for the intake
// core. The CLI and library code share one global logger set up once at
// startup.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" format when output is consumed by log tooling, "text" for
// human readability during development.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithFields returns a logger carrying consistent context through a
// multi-step operation.
//
// Usage:
//
//	log := logging.WithFields("record_id", id)
//	log.Info("upload started")
//	// ... later ...
//	log.Info("upload completed", "filename", file.Name)
func WithFields(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}
