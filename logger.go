package millerindex

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with millerindex-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithPosition adds a seed position field to the logger.
func (l *Logger) WithPosition(p int) *Logger {
	return &Logger{
		Logger: l.Logger.With("position", p),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs a tensor build.
func (l *Logger) LogBuild(ctx context.Context, indices int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"indices", indices,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "index built",
		"indices", indices,
		"elapsed", elapsed,
	)
}

// LogNeighbourhood logs a whole-dataset axis query.
func (l *Logger) LogNeighbourhood(ctx context.Context, seeds, step int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "neighbourhood query failed",
			"step", step,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "neighbourhood query completed",
		"seeds", seeds,
		"step", step,
	)
}

// LogArea logs a whole-dataset area query.
func (l *Logger) LogArea(ctx context.Context, seeds, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "area query failed",
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "area query completed",
		"seeds", seeds,
		"entries", entries,
	)
}
