// Package logging provides the package-level zerolog logger and
// context helpers shared across the engine, config, and CLI packages.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

// Logger is the package-level default logger, console-formatted at
// info level until InitLogger is called with a different
// configuration.
//
//nolint:gochecknoglobals // intentional: package-wide default logger
var Logger zerolog.Logger

func init() {
	Logger = newConsoleLogger(os.Stderr, zerolog.InfoLevel)
}

func newConsoleLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}

// InitLogger reconfigures the package-level Logger at the given level
// ("debug", "info", "warn", "error", ...). An unparsable level falls
// back to info.
func InitLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = newConsoleLogger(os.Stderr, lvl)
}

// ComponentLogger returns a child logger tagged with a "component"
// field, e.g. `logger.With().Str("component", "engine")...`.
func ComponentLogger(base zerolog.Logger, component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// ContextWithLogger returns a context carrying logger for retrieval via
// FromContext.
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the package-level
// default Logger if none was attached.
func FromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
		return l
	}
	return Logger
}
