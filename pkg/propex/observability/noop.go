package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordAdd does nothing.
func (NoopMetrics) RecordAdd(_ context.Context, _ string, _ bool) {}

// RecordErase does nothing.
func (NoopMetrics) RecordErase(_ context.Context, _ bool) {}

// RecordLookup does nothing.
func (NoopMetrics) RecordLookup(_ context.Context, _ string, _ bool) {}

// RecordSnapshot does nothing.
func (NoopMetrics) RecordSnapshot(_ context.Context, _ string, _ int, _ time.Duration, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartSnapshotSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartSnapshotSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
