package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("propex")

// SpanManager handles trace span lifecycle for snapshot operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartSnapshotSpan starts a span for a snapshot save or restore.
	StartSnapshotSpan(ctx context.Context, op, snapshotID string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager using the global OTel tracer provider.
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartSnapshotSpan(ctx context.Context, op, snapshotID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "propex.snapshot."+op,
		trace.WithAttributes(
			attribute.String("snapshot.op", op),
			attribute.String("snapshot.id", snapshotID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
