package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/propex/pkg/propex"
	"github.com/randalmurphal/propex/pkg/propex/snapshot"
)

// recordingSpans starts spans on a private tracer provider so tests never
// touch the global one.
type recordingSpans struct {
	tracer   trace.Tracer
	exporter *tracetest.InMemoryExporter
}

func newRecordingSpans(t *testing.T) *recordingSpans {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return &recordingSpans{tracer: tp.Tracer("test"), exporter: exporter}
}

func (r *recordingSpans) StartSnapshotSpan(ctx context.Context, op, id string) (context.Context, trace.Span) {
	return r.tracer.Start(ctx, "propex.snapshot."+op, trace.WithAttributes(attribute.String("snapshot.id", id)))
}

func (r *recordingSpans) EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *recordingSpans) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

type snapshotCall struct {
	op      string
	entries int
	failed  bool
}

type recordingMetrics struct {
	calls []snapshotCall
}

func (m *recordingMetrics) RecordAdd(context.Context, string, bool)   {}
func (m *recordingMetrics) RecordErase(context.Context, bool)         {}
func (m *recordingMetrics) RecordLookup(context.Context, string, bool) {}
func (m *recordingMetrics) RecordSnapshot(_ context.Context, op string, entries int, _ time.Duration, err error) {
	m.calls = append(m.calls, snapshotCall{op: op, entries: entries, failed: err != nil})
}

func TestManager_SaveAndRestore(t *testing.T) {
	ctx := context.Background()
	spans := newRecordingSpans(t)
	metrics := &recordingMetrics{}
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	mgr := snapshot.NewManager[string](snapshot.NewMemoryStore(),
		snapshot.WithLogger(logger),
		snapshot.WithMetrics(metrics),
		snapshot.WithSpanManager(spans),
	)

	reg := fleetRegistry()
	id, err := mgr.Save(ctx, reg, "nightly")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	speed := must(propex.Lookup[int](reg, "carA:speed"))
	speed.MustSet(1)

	res, err := mgr.Restore(ctx, reg, id)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Applied)
	assert.Equal(t, 42, speed.MustGet())

	assert.Equal(t, []snapshotCall{
		{op: "save", entries: 5},
		{op: "restore", entries: 5},
	}, metrics.calls)

	ended := spans.exporter.GetSpans()
	require.Len(t, ended, 2)
	assert.Equal(t, "propex.snapshot.save", ended[0].Name)
	assert.Contains(t, ended[0].Attributes, attribute.String("snapshot.id", id))
	require.Len(t, ended[0].Events, 1)
	assert.Equal(t, "captured", ended[0].Events[0].Name)
	assert.Equal(t, "propex.snapshot.restore", ended[1].Name)

	out := logs.String()
	assert.Contains(t, out, "snapshot saved")
	assert.Contains(t, out, "snapshot restored")
	assert.Contains(t, out, "applied=5")

	infos, err := mgr.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "nightly", infos[0].Label)
}

func TestManager_RestoreNotFound(t *testing.T) {
	spans := newRecordingSpans(t)
	metrics := &recordingMetrics{}
	var logs bytes.Buffer

	mgr := snapshot.NewManager[string](snapshot.NewMemoryStore(),
		snapshot.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		snapshot.WithMetrics(metrics),
		snapshot.WithSpanManager(spans),
	)

	_, err := mgr.Restore(context.Background(), propex.NewRegistry(), "missing")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)

	assert.Equal(t, []snapshotCall{{op: "restore", failed: true}}, metrics.calls)
	ended := spans.exporter.GetSpans()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status.Code)
	assert.Contains(t, logs.String(), "snapshot failed")
}

func TestManager_SaveStoreClosed(t *testing.T) {
	store := snapshot.NewMemoryStore()
	require.NoError(t, store.Close())
	mgr := snapshot.NewManager[string](store)

	id, err := mgr.Save(context.Background(), fleetRegistry(), "")
	assert.ErrorIs(t, err, snapshot.ErrStoreClosed)
	assert.NotEmpty(t, id)
}

func TestManager_Latest(t *testing.T) {
	ctx := context.Background()
	mgr := snapshot.NewManager[string](snapshot.NewMemoryStore(), snapshot.WithMetrics(nil), snapshot.WithSpanManager(nil))
	reg := fleetRegistry()
	speed := must(propex.Lookup[int](reg, "carA:speed"))

	_, _, err := mgr.Latest(ctx, reg)
	assert.ErrorIs(t, err, snapshot.ErrNotFound)

	_, err = mgr.Save(ctx, reg, "first")
	require.NoError(t, err)
	// Timestamps are taken from the wall clock; keep them distinct.
	time.Sleep(2 * time.Millisecond)
	speed.MustSet(60)
	second, err := mgr.Save(ctx, reg, "second")
	require.NoError(t, err)

	speed.MustSet(0)
	id, res, err := mgr.Latest(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, second, id)
	assert.Equal(t, 5, res.Applied)
	assert.Equal(t, 60, speed.MustGet())
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	mgr := snapshot.NewManager[string](snapshot.NewMemoryStore())

	id, err := mgr.Save(ctx, fleetRegistry(), "")
	require.NoError(t, err)
	require.NoError(t, mgr.Delete(ctx, id))

	_, err = mgr.Store().Load(ctx, id)
	assert.True(t, errors.Is(err, snapshot.ErrNotFound))
}
