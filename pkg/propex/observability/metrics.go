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

// MetricsRecorder records registry and snapshot metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordAdd records a node insertion. replaced is true when a previous
	// node was released.
	RecordAdd(ctx context.Context, kind string, replaced bool)

	// RecordErase records an erase call and whether it removed anything.
	RecordErase(ctx context.Context, removed bool)

	// RecordLookup records a keyed lookup ("find", "at", "contains").
	RecordLookup(ctx context.Context, op string, hit bool)

	// RecordSnapshot records a snapshot save or restore.
	RecordSnapshot(ctx context.Context, op string, entries int, duration time.Duration, err error)
}

type otelMetrics struct {
	adds             metric.Int64Counter
	erases           metric.Int64Counter
	lookups          metric.Int64Counter
	snapshotOps      metric.Int64Counter
	snapshotErrors   metric.Int64Counter
	snapshotEntries  metric.Int64Histogram
	snapshotDuration metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("propex")

	adds, err := meter.Int64Counter("propex.registry.adds",
		metric.WithDescription("Number of nodes inserted"),
	)
	if err != nil {
		return nil, err
	}

	erases, err := meter.Int64Counter("propex.registry.erases",
		metric.WithDescription("Number of erase calls"),
	)
	if err != nil {
		return nil, err
	}

	lookups, err := meter.Int64Counter("propex.registry.lookups",
		metric.WithDescription("Number of keyed lookups"),
	)
	if err != nil {
		return nil, err
	}

	snapshotOps, err := meter.Int64Counter("propex.snapshot.operations",
		metric.WithDescription("Number of snapshot saves and restores"),
	)
	if err != nil {
		return nil, err
	}

	snapshotErrors, err := meter.Int64Counter("propex.snapshot.errors",
		metric.WithDescription("Number of failed snapshot operations"),
	)
	if err != nil {
		return nil, err
	}

	snapshotEntries, err := meter.Int64Histogram("propex.snapshot.entries",
		metric.WithDescription("Entries per snapshot operation"),
	)
	if err != nil {
		return nil, err
	}

	snapshotDuration, err := meter.Float64Histogram("propex.snapshot.duration_ms",
		metric.WithDescription("Snapshot operation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		adds:             adds,
		erases:           erases,
		lookups:          lookups,
		snapshotOps:      snapshotOps,
		snapshotErrors:   snapshotErrors,
		snapshotEntries:  snapshotEntries,
		snapshotDuration: snapshotDuration,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. If instrument creation fails it returns NoopMetrics{}.
//
// Configure the provider before calling:
//
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

func (m *otelMetrics) RecordAdd(ctx context.Context, kind string, replaced bool) {
	m.adds.Add(ctx, 1, metric.WithAttributes(
		attribute.String("ownership", kind),
		attribute.Bool("replaced", replaced),
	))
}

func (m *otelMetrics) RecordErase(ctx context.Context, removed bool) {
	m.erases.Add(ctx, 1, metric.WithAttributes(attribute.Bool("removed", removed)))
}

func (m *otelMetrics) RecordLookup(ctx context.Context, op string, hit bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.Bool("hit", hit),
	))
}

func (m *otelMetrics) RecordSnapshot(ctx context.Context, op string, entries int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("op", op))

	m.snapshotOps.Add(ctx, 1, attrs)
	m.snapshotEntries.Record(ctx, int64(entries), attrs)
	m.snapshotDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	if err != nil {
		m.snapshotErrors.Add(ctx, 1, attrs)
	}
}
