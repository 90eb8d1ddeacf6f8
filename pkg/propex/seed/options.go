package seed

import (
	"log/slog"
	"maps"

	"github.com/randalmurphal/propex/pkg/propex/ownership"
)

type settings struct {
	expander expander
	policy   ownership.Kind
	prefix   []string
	source   string
	logger   *slog.Logger
}

func defaults() settings {
	return settings{
		expander: expander{vars: map[string]string{}, missing: MissingError},
		policy:   ownership.KindOwned,
		source:   "config",
	}
}

// Option configures Populate.
type Option func(*settings)

// WithVariables adds variables for ${VAR} expansion. Repeated calls merge,
// later values winning.
func WithVariables(vars map[string]string) Option {
	return func(s *settings) {
		maps.Copy(s.expander.vars, vars)
	}
}

// WithEnvironment falls back to the process environment for variables not
// given with WithVariables.
func WithEnvironment() Option {
	return func(s *settings) {
		s.expander.env = true
	}
}

// WithMissingAction sets how undefined variables are handled.
//
// Default: MissingError
func WithMissingAction(a MissingAction) Option {
	return func(s *settings) {
		s.expander.missing = a
	}
}

// WithDefaultPolicy sets the policy for declarations that name none.
//
// Default: ownership.KindOwned
func WithDefaultPolicy(k ownership.Kind) Option {
	return func(s *settings) {
		s.policy = k
	}
}

// WithPrefix prepends key fragments to every seeded key.
func WithPrefix(fragments ...string) Option {
	return func(s *settings) {
		s.prefix = append(s.prefix, fragments...)
	}
}

// WithSource names the configuration source in logs.
func WithSource(name string) Option {
	return func(s *settings) {
		s.source = name
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}
