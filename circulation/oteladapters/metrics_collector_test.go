package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/circulation/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "borrow_item", "status": "success"}

	// act
	collector.RecordDuration("circulation_handler_duration_seconds", 250*time.Millisecond, labels)

	// assert
	data := collectMetric(t, reader, "circulation_handler_duration_seconds")
	histogram, ok := data.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "expected a float64 histogram")
	require.Len(t, histogram.DataPoints, 1)

	dataPoint := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), dataPoint.Count)
	assert.InDelta(t, 0.25, dataPoint.Sum, 0.0001)
	assert.Equal(t, "s", data.Unit)

	expectedAttrs := attribute.NewSet(
		attribute.String("operation", "borrow_item"),
		attribute.String("status", "success"),
	)
	assert.True(t, dataPoint.Attributes.Equals(&expectedAttrs))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	labels := map[string]string{"operation": "return_item", "status": "rejected"}

	// act
	collector.IncrementCounter("circulation_handler_calls_total", labels)
	collector.IncrementCounter("circulation_handler_calls_total", labels)
	collector.IncrementCounterContext(context.Background(), "circulation_handler_calls_total", labels)

	// assert
	data := collectMetric(t, reader, "circulation_handler_calls_total")
	sum, ok := data.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(3), sum.DataPoints[0].Value)
	assert.True(t, sum.IsMonotonic)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.RecordValue("circulation_open_loans", 3, map[string]string{"patron_category": "STANDARD"})
	collector.RecordValueContext(context.Background(), "circulation_open_loans", 4, map[string]string{"patron_category": "STANDARD"})

	// assert
	data := collectMetric(t, reader, "circulation_open_loans")
	gauge, ok := data.Data.(metricdata.Gauge[float64])
	require.True(t, ok, "expected a float64 gauge")
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 4.0, gauge.DataPoints[0].Value, "a gauge keeps the last value")
}

func Test_MetricsCollector_SeparatesLabelSets(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()

	// act
	collector.IncrementCounter("circulation_store_database_errors_total", map[string]string{"error_type": "exec"})
	collector.IncrementCounter("circulation_store_database_errors_total", map[string]string{"error_type": "commit"})
	collector.IncrementCounter("circulation_store_database_errors_total", nil)

	// assert
	data := collectMetric(t, reader, "circulation_store_database_errors_total")
	sum, ok := data.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, sum.DataPoints, 3)
}

func Test_MetricsCollector_ConcurrentUse(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector()
	const workers = 20

	// act
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounter("circulation_concurrent_total", nil)
			collector.RecordDuration("circulation_concurrent_seconds", time.Millisecond, nil)
		}()
	}
	wg.Wait()

	// assert
	data := collectMetric(t, reader, "circulation_concurrent_total")
	sum, ok := data.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(workers), sum.DataPoints[0].Value)
}

func givenMetricsCollector() (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func collectMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %q was not collected", name)

	return metricdata.Metrics{}
}
