package registry

import (
	"log/slog"

	"github.com/randalmurphal/propex/pkg/propex/key"
	"github.com/randalmurphal/propex/pkg/propex/observability"
)

// config holds registry construction settings.
type config[K ~string] struct {
	traits  key.Traits[K]
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

func defaultConfig[K ~string]() config[K] {
	return config[K]{
		traits:  key.Default[K](),
		metrics: observability.NoopMetrics{},
	}
}

// Option configures a Registry.
type Option[K ~string] func(*config[K])

// WithTraits sets the key traits used by Add and Key.
// Default: key.Default, which joins fragments with ':'.
func WithTraits[K ~string](t key.Traits[K]) Option[K] {
	return func(c *config[K]) {
		if t != nil {
			c.traits = t
		}
	}
}

// WithName names the registry in log output.
func WithName[K ~string](name string) Option[K] {
	return func(c *config[K]) {
		c.name = name
	}
}

// WithLogger enables debug logging of inserts, removals and lookup misses.
func WithLogger[K ~string](logger *slog.Logger) Option[K] {
	return func(c *config[K]) {
		c.logger = logger
	}
}

// WithMetrics records registry operations.
//
// Example:
//
//	r := registry.New[string, propex.Node](
//	    registry.WithMetrics[string](observability.NewMetricsRecorder()),
//	)
func WithMetrics[K ~string](m observability.MetricsRecorder) Option[K] {
	return func(c *config[K]) {
		if m != nil {
			c.metrics = m
		}
	}
}
