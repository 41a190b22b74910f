package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls how the application logger is built
type Options struct {
	Environment string
	Level       string    // debug, info, warn, error; empty picks the environment default
	Output      io.Writer // defaults to os.Stdout
}

// InitLogger initializes the application logger for the given environment
// and installs it as the slog default
func InitLogger(environment, level string) *slog.Logger {
	logger := New(Options{Environment: environment, Level: level})
	slog.SetDefault(logger)
	return logger
}

// New builds a logger without touching the slog default.
// Development gets a text handler with source locations, everything else JSON.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if opts.Environment == "development" {
		handlerOpts.Level = slog.LevelDebug
		handlerOpts.AddSource = true
	}
	if lvl, ok := parseLevel(opts.Level); ok {
		handlerOpts.Level = lvl
	}

	var handler slog.Handler
	if opts.Environment == "development" {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	return slog.New(handler)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
