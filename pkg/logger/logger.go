// Package logger builds the process-wide slog logger from the config.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/mytheresa/storefront/pkg/config"
)

// New returns a logger writing to out in the configured format and makes
// it the slog default. Every record carries the service and env.
func New(service string, cfg config.Config, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     Level(cfg.LogLevel),
		AddSource: cfg.Dev(),
	}

	var h slog.Handler
	if cfg.LogFormat == config.LogText {
		h = slog.NewTextHandler(out, opts)
	} else {
		h = slog.NewJSONHandler(out, opts)
	}

	log := slog.New(h).With(
		slog.String("service", service),
		slog.String("env", cfg.AppEnv),
	)
	slog.SetDefault(log)
	return log
}

// Level parses LOG_LEVEL; anything unrecognised logs at info.
func Level(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
