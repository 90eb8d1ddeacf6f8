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

// setupTracingTest installs an in-memory tracer provider.
func setupTracingTest(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("propex")

	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		tracer = otel.Tracer("propex")
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	})
	return exporter
}

func TestStartSnapshotSpan(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartSnapshotSpan(context.Background(), "save", "snap-1")
	sm.EndSpanWithError(span, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "propex.snapshot.save", s.Name)
	assert.Equal(t, codes.Ok, s.Status.Code)
	assert.Contains(t, s.Attributes, attribute.String("snapshot.id", "snap-1"))
	assert.Contains(t, s.Attributes, attribute.String("snapshot.op", "save"))
}

func TestEndSpanWithError(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	_, span := sm.StartSnapshotSpan(context.Background(), "restore", "snap-2")
	sm.EndSpanWithError(span, errors.New("type mismatch"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "type mismatch", spans[0].Status.Description)
	assert.NotEmpty(t, spans[0].Events)
}

func TestEndSpanWithError_NilSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() { sm.EndSpanWithError(nil, nil) })
}

func TestAddSpanEvent(t *testing.T) {
	exporter := setupTracingTest(t)
	sm := NewSpanManager()

	ctx, span := sm.StartSnapshotSpan(context.Background(), "save", "snap-3")
	sm.AddSpanEvent(ctx, "captured", attribute.Int("entries", 4))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "captured", spans[0].Events[0].Name)
}

func TestAddSpanEvent_NoSpan(t *testing.T) {
	sm := NewSpanManager()
	assert.NotPanics(t, func() {
		sm.AddSpanEvent(context.Background(), "orphan")
	})
}

func TestNoopSpanManager(t *testing.T) {
	var sm SpanManager = NoopSpanManager{}
	ctx := context.Background()

	got, span := sm.StartSnapshotSpan(ctx, "save", "id")
	assert.Equal(t, ctx, got)
	assert.False(t, span.IsRecording())
	assert.NotPanics(t, func() {
		sm.AddSpanEvent(ctx, "x")
		sm.EndSpanWithError(span, errors.New("x"))
	})
}
