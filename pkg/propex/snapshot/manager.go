package snapshot

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/propex/pkg/propex"
	"github.com/randalmurphal/propex/pkg/propex/observability"
	"github.com/randalmurphal/propex/pkg/propex/registry"
)

// Manager captures and restores registries through a Store, reporting each
// operation to logs, metrics and traces.
type Manager[K ~string] struct {
	store   Store
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// ManagerOption configures a Manager.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(c *managerConfig) {
		c.logger = l
	}
}

// WithMetrics sets the metrics recorder. A nil recorder is ignored.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) ManagerOption {
	return func(c *managerConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager. A nil manager is ignored.
//
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) ManagerOption {
	return func(c *managerConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// NewManager returns a manager persisting to store.
func NewManager[K ~string](store Store, opts ...ManagerOption) *Manager[K] {
	cfg := managerConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[K]{
		store:   store,
		logger:  cfg.logger,
		metrics: cfg.metrics,
		spans:   cfg.spans,
	}
}

// Store returns the underlying store.
func (m *Manager[K]) Store() Store {
	return m.store
}

// Save captures reg and stores it under a new ID, which it returns.
func (m *Manager[K]) Save(ctx context.Context, reg *registry.Registry[K, propex.Node], label string) (id string, err error) {
	start := time.Now()
	elapsed := observability.TimedOperation()
	entries := 0

	ctx, span := m.spans.StartSnapshotSpan(ctx, "save", "")
	defer func() {
		m.spans.EndSpanWithError(span, err)
		m.metrics.RecordSnapshot(ctx, "save", entries, time.Since(start), err)
		if err != nil {
			observability.LogSnapshotError(m.logger, id, "save", err)
		}
	}()

	snap, err := Capture(reg, label)
	if err != nil {
		return "", err
	}
	id, entries = snap.ID, len(snap.Entries)
	span.SetAttributes(attribute.String("snapshot.id", id))
	m.spans.AddSpanEvent(ctx, "captured", attribute.Int("snapshot.entries", entries))

	if err = m.store.Save(ctx, snap); err != nil {
		return id, err
	}
	observability.LogSnapshotSaved(m.logger, id, entries, elapsed())
	return id, nil
}

// Restore loads the snapshot id and writes its values into reg.
func (m *Manager[K]) Restore(ctx context.Context, reg *registry.Registry[K, propex.Node], id string) (res RestoreResult, err error) {
	start := time.Now()
	entries := 0

	ctx, span := m.spans.StartSnapshotSpan(ctx, "restore", id)
	defer func() {
		m.spans.EndSpanWithError(span, err)
		m.metrics.RecordSnapshot(ctx, "restore", entries, time.Since(start), err)
		if err != nil {
			observability.LogSnapshotError(m.logger, id, "restore", err)
		}
	}()

	snap, err := m.store.Load(ctx, id)
	if err != nil {
		return res, err
	}
	entries = len(snap.Entries)
	m.spans.AddSpanEvent(ctx, "loaded", attribute.Int("snapshot.entries", entries))

	res, err = Restore(reg, snap)
	if err != nil {
		return res, err
	}
	observability.LogSnapshotRestored(m.logger, id, res.Applied, res.Skipped)
	return res, nil
}

// List describes the stored snapshots, oldest first.
func (m *Manager[K]) List(ctx context.Context) ([]Info, error) {
	return m.store.List(ctx)
}

// Delete removes a stored snapshot.
func (m *Manager[K]) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

// Latest restores the most recent snapshot. It returns ErrNotFound when the
// store is empty.
func (m *Manager[K]) Latest(ctx context.Context, reg *registry.Registry[K, propex.Node]) (string, RestoreResult, error) {
	infos, err := m.store.List(ctx)
	if err != nil {
		return "", RestoreResult{}, err
	}
	if len(infos) == 0 {
		return "", RestoreResult{}, ErrNotFound
	}
	id := infos[len(infos)-1].ID
	res, err := m.Restore(ctx, reg, id)
	return id, res, err
}
