package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With attaches a child logger carrying the given fields to the context.
// Fields accumulate: calling With twice stacks both sets on later log lines.
func With(ctx context.Context, fields ...any) context.Context {
	l := From(ctx).With(fields...)
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in context, or the process logger if none is set.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
