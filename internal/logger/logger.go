// Package logger holds the process-wide slog logger. Diagnostics always
// go to stderr so list output on stdout stays machine-consumable.
package logger

import (
	"log/slog"
	"os"
)

// Log is the global logger instance used throughout the application.
var Log *slog.Logger

func init() {
	Init("")
}

// Init (re)initializes the global logger. Log level is taken from the
// argument, falling back to the LOG_LEVEL environment variable, then "info".
func Init(logLevel string) {
	if logLevel == "" {
		if logLevel = os.Getenv("LOG_LEVEL"); logLevel == "" {
			logLevel = "info"
		}
	}

	level := slog.LevelInfo
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
