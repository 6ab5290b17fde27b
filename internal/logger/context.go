package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey carries the logger built by the root command's PersistentPreRunE
// down to every subcommand through cmd.Context().
type loggerKey struct{}

func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the command logger, or a no-op logger when the context
// carries none (tests that build use cases directly, or a nil context).
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.NewNop()
	}
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// ForCommand returns the context logger tagged with the invoked command path,
// e.g. "aide task create".
func ForCommand(ctx context.Context, path string) *zap.Logger {
	return FromContext(ctx).With(zap.String("command", path))
}
