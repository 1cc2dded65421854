// Package ctxlog carries the run's *slog.Logger through context.Context.
//
// App.Run stores a logger tagged with the run id; the recipe loader, path
// resolution and the engine read it back so every record of one run shares
// that id. Code called without a run logger (library use, unit tests) logs
// through slog.Default.
package ctxlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx that carries logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
