package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records studio metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSubmission records a flow submission with its duration,
	// node count, and error status.
	RecordSubmission(ctx context.Context, duration time.Duration, nodeCount int, err error)

	// RecordFetch records a flow record lookup.
	RecordFetch(ctx context.Context, duration time.Duration, err error)

	// RecordMutation records a graph mutation command by name.
	RecordMutation(ctx context.Context, op string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	submissions       metric.Int64Counter
	submissionLatency metric.Float64Histogram
	submissionNodes   metric.Int64Histogram
	fetches           metric.Int64Counter
	fetchLatency      metric.Float64Histogram
	mutations         metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("studio")

	submissions, err := meter.Int64Counter("studio.flow.submissions",
		metric.WithDescription("Number of flow submissions"),
	)
	if err != nil {
		return nil, err
	}

	submissionLatency, err := meter.Float64Histogram("studio.flow.submission_latency_ms",
		metric.WithDescription("Flow submission latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	submissionNodes, err := meter.Int64Histogram("studio.flow.submission_nodes",
		metric.WithDescription("Node count per submitted flow"),
	)
	if err != nil {
		return nil, err
	}

	fetches, err := meter.Int64Counter("studio.flow.fetches",
		metric.WithDescription("Number of flow record lookups"),
	)
	if err != nil {
		return nil, err
	}

	fetchLatency, err := meter.Float64Histogram("studio.flow.fetch_latency_ms",
		metric.WithDescription("Flow record lookup latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	mutations, err := meter.Int64Counter("studio.graph.mutations",
		metric.WithDescription("Number of graph mutation commands"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		submissions:       submissions,
		submissionLatency: submissionLatency,
		submissionNodes:   submissionNodes,
		fetches:           fetches,
		fetchLatency:      fetchLatency,
		mutations:         mutations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSubmission records a flow submission.
func (m *otelMetrics) RecordSubmission(ctx context.Context, duration time.Duration, nodeCount int, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.submissions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.submissionLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.submissionNodes.Record(ctx, int64(nodeCount), metric.WithAttributes(attrs...))
}

// RecordFetch records a flow record lookup.
func (m *otelMetrics) RecordFetch(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.fetches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.fetchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordMutation records a graph mutation command.
func (m *otelMetrics) RecordMutation(ctx context.Context, op string) {
	m.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
	))
}
