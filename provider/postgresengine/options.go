package postgresengine

import (
	"github.com/provstack/postgres-provider-go/provider"
)

// Option defines a functional option for configuring an Adapter.
type Option func(*Adapter) error

// WithLogger sets the logger for the Adapter.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger provider.Logger) Option {
	return func(a *Adapter) error {
		a.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Adapter.
// The contextual logger receives the same messages as the plain logger but
// with context information, enabling automatic trace correlation.
func WithContextualLogger(logger provider.ContextualLogger) Option {
	return func(a *Adapter) error {
		a.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Adapter.
// The collector receives operation durations and error counts labeled with
// the operation kind and the provider identifier.
func WithMetrics(collector provider.MetricsCollector) Option {
	return func(a *Adapter) error {
		a.metricsCollector = collector
		return nil
	}
}
