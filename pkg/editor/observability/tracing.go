package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the studio tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("studio")

// SpanManager handles trace span lifecycle for the two wire operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSubmitSpan starts a span for a flow submission.
	StartSubmitSpan(ctx context.Context, attemptID string, nodeCount int) (context.Context, trace.Span)

	// StartFetchSpan starts a span for a flow record lookup.
	StartFetchSpan(ctx context.Context, flowID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartSubmitSpan starts a span for a flow submission.
func (m *otelSpanManager) StartSubmitSpan(ctx context.Context, attemptID string, nodeCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "studio.flow.submit",
		trace.WithAttributes(
			attribute.String("attempt.id", attemptID),
			attribute.Int("flow.nodes", nodeCount),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartFetchSpan starts a span for a flow record lookup.
func (m *otelSpanManager) StartFetchSpan(ctx context.Context, flowID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "studio.flow.fetch",
		trace.WithAttributes(
			attribute.String("flow.id", flowID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpanWithError completes a span, recording the error if present.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
