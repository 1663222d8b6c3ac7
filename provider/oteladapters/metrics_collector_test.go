package oteladapters_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/provstack/postgres-provider-go/provider/oteladapters"
)

func Test_MetricsCollector_ShouldNotPanic_WithNoopMeter(t *testing.T) {
	// setup
	meter := noop.NewMeterProvider().Meter("postgres-provider-test")
	collector := oteladapters.NewMetricsCollector(meter)

	labels := map[string]string{
		"operation":   "query",
		"provider_id": "postgres-test",
	}

	// act + assert
	assert.NotPanics(t, func() {
		collector.RecordDuration("provider_operation_duration", 42*time.Millisecond, labels)
		collector.RecordDuration("provider_operation_duration", 7*time.Millisecond, labels)
		collector.IncrementCounter("provider_operation_errors", labels)
		collector.IncrementCounter("provider_operation_errors", nil)
	})
}
