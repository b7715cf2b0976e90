package weld

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific context.
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
// It is the default for every index.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithIndex tags the logger with the kind of index it reports for
// ("point", "map", "set").
func (l *Logger) WithIndex(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("index", kind),
	}
}

// WithEpsilon adds the welding tolerance to the logger.
func (l *Logger) WithEpsilon(epsilon float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("epsilon", epsilon),
	}
}

// LogRehash logs a completed bucket table rehash.
func (l *Logger) LogRehash(oldBuckets, newBuckets, entries int, d time.Duration) {
	l.Debug("rehash completed",
		"old_buckets", oldBuckets,
		"new_buckets", newBuckets,
		"entries", entries,
		"duration", d,
	)
}

// LogClear logs an index reset.
func (l *Logger) LogClear(entries, buckets int) {
	l.Debug("index cleared",
		"entries", entries,
		"buckets", buckets,
	)
}

// LogBatchLookup logs a parallel lookup.
func (l *Logger) LogBatchLookup(ctx context.Context, count, found int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch lookup failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch lookup completed",
			"count", count,
			"found", found,
		)
	}
}
