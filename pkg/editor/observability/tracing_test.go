package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory
// span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("studio")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}
	return exporter, cleanup
}

// attrValue finds a span attribute by key.
func attrValue(span tracetest.SpanStub, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// TestStartSubmitSpan tests span naming and attributes.
func TestStartSubmitSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	_, span := m.StartSubmitSpan(context.Background(), "att-1", 4)
	require.NotNil(t, span)
	m.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "studio.flow.submit", spans[0].Name)

	v, ok := attrValue(spans[0], "attempt.id")
	require.True(t, ok)
	assert.Equal(t, "att-1", v.AsString())

	v, ok = attrValue(spans[0], "flow.nodes")
	require.True(t, ok)
	assert.Equal(t, int64(4), v.AsInt64())
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
}

// TestStartFetchSpan tests the lookup span.
func TestStartFetchSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	_, span := m.StartFetchSpan(context.Background(), "f-1")
	m.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "studio.flow.fetch", spans[0].Name)

	v, ok := attrValue(spans[0], "flow.id")
	require.True(t, ok)
	assert.Equal(t, "f-1", v.AsString())
}

// TestEndSpanWithError tests error recording.
func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	_, span := m.StartFetchSpan(context.Background(), "f-1")
	m.EndSpanWithError(span, errors.New("gone"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "gone", spans[0].Status.Description)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

// TestAddSpanEvent tests event attachment through context.
func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	ctx, span := m.StartSubmitSpan(context.Background(), "att-1", 1)
	m.AddSpanEvent(ctx, "journal.recorded", attribute.String("flow.id", "f-1"))
	m.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "journal.recorded", spans[0].Events[0].Name)
}
