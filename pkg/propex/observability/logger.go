// Package observability provides structured logging, metrics, and tracing
// hooks for propex registries and the packages built on them.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Everything is opt-in. A nil logger logs nothing, and NoopMetrics and
// NoopSpanManager stand in when metrics or tracing are disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger returns a logger tagged with the registry name.
func EnrichLogger(logger *slog.Logger, registry string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("registry", registry))
}

// LogNodeAdded logs insertion of a node under a new key.
func LogNodeAdded(logger *slog.Logger, key, valueType, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("node added",
		slog.String("key", key),
		slog.String("value_type", valueType),
		slog.String("ownership", kind),
	)
}

// LogNodeReplaced logs insertion that released a previous occupant.
func LogNodeReplaced(logger *slog.Logger, key, valueType, kind string) {
	if logger == nil {
		return
	}
	logger.Debug("node replaced",
		slog.String("key", key),
		slog.String("value_type", valueType),
		slog.String("ownership", kind),
	)
}

// LogNodeErased logs removal of a node.
func LogNodeErased(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("node erased", slog.String("key", key))
}

// LogRegistryCleared logs a bulk clear.
func LogRegistryCleared(logger *slog.Logger, released int) {
	if logger == nil {
		return
	}
	logger.Debug("registry cleared", slog.Int("released", released))
}

// LogLookupMiss logs a checked lookup on an absent key.
func LogLookupMiss(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("key not found", slog.String("key", key))
}

// LogSeeded logs nodes created from configuration.
func LogSeeded(logger *slog.Logger, source string, added int) {
	if logger == nil {
		return
	}
	logger.Info("registry seeded",
		slog.String("source", source),
		slog.Int("nodes_added", added),
	)
}

// LogSnapshotSaved logs a persisted snapshot.
func LogSnapshotSaved(logger *slog.Logger, id string, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("snapshot saved",
		slog.String("snapshot_id", id),
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogSnapshotRestored logs values applied from a snapshot.
func LogSnapshotRestored(logger *slog.Logger, id string, applied, skipped int) {
	if logger == nil {
		return
	}
	logger.Info("snapshot restored",
		slog.String("snapshot_id", id),
		slog.Int("applied", applied),
		slog.Int("skipped", skipped),
	)
}

// LogSnapshotError logs a failed snapshot operation.
func LogSnapshotError(logger *slog.Logger, id, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("snapshot failed",
		slog.String("snapshot_id", id),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a func reporting elapsed milliseconds since the call.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
