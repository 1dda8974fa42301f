package bootstrap

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

var nopLogger = zerolog.Nop()

// log returns the logger attached by WithLogger. Events are dropped if there is none.
func log(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return &nopLogger
}

// WithLogger attaches the given logger to the context
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
