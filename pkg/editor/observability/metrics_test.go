package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest creates a test meter provider and returns a reader
// plus a cleanup function.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// TestNewMetricsRecorder tests construction against a real provider.
func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	assert.NotNil(t, recorder)
}

// TestRecordSubmission tests the submission instruments.
func TestRecordSubmission(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordSubmission(ctx, 42*time.Millisecond, 3, nil)
	m.RecordSubmission(ctx, 10*time.Millisecond, 5, errors.New("boom"))

	rm := collectMetrics(t, reader)

	counter := findMetric(rm, "studio.flow.submissions")
	require.NotNil(t, counter)
	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(2), total)

	assert.NotNil(t, findMetric(rm, "studio.flow.submission_latency_ms"))
	assert.NotNil(t, findMetric(rm, "studio.flow.submission_nodes"))
}

// TestRecordFetch tests the lookup instruments.
func TestRecordFetch(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	m.RecordFetch(context.Background(), 7*time.Millisecond, nil)

	rm := collectMetrics(t, reader)
	assert.NotNil(t, findMetric(rm, "studio.flow.fetches"))
	assert.NotNil(t, findMetric(rm, "studio.flow.fetch_latency_ms"))
}

// TestRecordMutation tests the mutation counter and its op attribute.
func TestRecordMutation(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordMutation(ctx, "add_node")
	m.RecordMutation(ctx, "add_node")
	m.RecordMutation(ctx, "remove_node")

	rm := collectMetrics(t, reader)
	counter := findMetric(rm, "studio.graph.mutations")
	require.NotNil(t, counter)

	sum, ok := counter.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	assert.Equal(t, int64(3), total)
	// One data point per distinct op attribute.
	assert.Len(t, sum.DataPoints, 2)
}
