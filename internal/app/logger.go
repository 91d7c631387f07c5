package app

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jaapghar/jaapghar-backend/internal/config"
)

// NewLogger builds the process-wide *slog.Logger from LogConfig and installs
// it as the slog default.
//
// Format "json" is what the deployed service runs with; anything else falls
// back to a text handler with source locations for local development. Level
// is one of debug, info, warn, error (case-insensitive) and defaults to info.
// Output goes to os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !strings.EqualFold(cfg.Format, "json"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
