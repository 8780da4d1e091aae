// Package logging builds the slog logger of the exporter command.
package logging

import (
	"io"
	"log/slog"

	"github.com/hyperledger/cactus-core-api-go/internal/config"
)

// New returns a logger writing to w in the configured format. Unknown
// levels fall back to info and unknown formats to text.
func New(w io.Writer, cfg config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Level maps a configured level name to a slog.Level.
func Level(name string) slog.Level {
	switch name {
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
