package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every line logged through ctx with the subsystem
// that produced it ("api", "snapshot", "engine").
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithSessionID tags log lines with the layout session they belong to.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return withField(ctx, "session_id", sessionID)
}

func withField(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return child.WithContext(ctx)
}
