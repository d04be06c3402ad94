// Package logging configures the process-wide slog logger and hands out
// module-scoped loggers.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Init installs a text handler writing to w at the given level as the
// default slog logger.
func Init(level string, w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	logger := slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("service", "tasks"),
	}))
	slog.SetDefault(logger)
	return logger
}

// Module returns the default logger tagged with the module name.
func Module(name string) *slog.Logger {
	return slog.Default().With(slog.String("module", name))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values
// resolve to info.
func ParseLevel(level string) slog.Level {
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
