package provider

import (
	"context"
	"time"
)

// Logger interface for SQL query logging, operational messages, warnings,
// and error reporting. Satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace
// correlation. This interface follows a dependency-free pattern, allowing
// users to integrate with any logging backend that supports context-based
// correlation (OpenTelemetry slog bridge, plain slog, ...).
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector interface for collecting provider performance and
// operational metrics. Implementations map these calls onto their metrics
// backend; see the oteladapters package for an OpenTelemetry implementation.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
}
