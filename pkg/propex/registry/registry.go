package registry

import (
	"context"
	"log/slog"
	"reflect"
	"slices"

	"github.com/randalmurphal/propex/pkg/propex/key"
	"github.com/randalmurphal/propex/pkg/propex/observability"
	"github.com/randalmurphal/propex/pkg/propex/ownership"
)

// Releaser is implemented by nodes that must be told when the registry
// drops them.
type Releaser interface {
	Release()
}

// Registry maps composite keys to nodes it owns.
type Registry[K ~string, N any] struct {
	traits  key.Traits[K]
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	entries map[K]N
	// holds counts the keys under which each pointer node is stored.
	holds map[any]int
}

// New creates an empty registry.
func New[K ~string, N any](opts ...Option[K]) *Registry[K, N] {
	cfg := defaultConfig[K]()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if cfg.name != "" {
		logger = observability.EnrichLogger(logger, cfg.name)
	}

	return &Registry[K, N]{
		traits:  cfg.traits,
		logger:  logger,
		metrics: cfg.metrics,
		entries: make(map[K]N),
		holds:   make(map[any]int),
	}
}

// Traits returns the key traits used to compose keys.
func (r *Registry[K, N]) Traits() key.Traits[K] {
	return r.traits
}

// Key composes fragments into the key Add would use for them.
// A single fragment is returned unchanged.
func (r *Registry[K, N]) Key(first K, rest ...K) K {
	if len(rest) == 0 {
		return first
	}
	return r.traits.Merge(append([]K{first}, rest...)...)
}

// Add stores node under the key composed from the fragments, replacing and
// releasing any node already stored there. A node stored under several keys
// is released only when the last of them lets go of it.
func (r *Registry[K, N]) Add(node N, first K, rest ...K) {
	k := r.Key(first, rest...)

	prev, replaced := r.entries[k]
	r.entries[k] = node
	if !replaced || !same(prev, node) {
		r.hold(node)
		if replaced {
			r.drop(prev)
		}
	}

	valueType, kind := describe(node)
	if replaced {
		observability.LogNodeReplaced(r.logger, string(k), valueType, kind)
	} else {
		observability.LogNodeAdded(r.logger, string(k), valueType, kind)
	}
	r.metrics.RecordAdd(context.Background(), kind, replaced)
}

// Find returns the node stored under k, if any.
func (r *Registry[K, N]) Find(k K) (N, bool) {
	n, ok := r.entries[k]
	r.metrics.RecordLookup(context.Background(), "find", ok)
	return n, ok
}

// Contains reports whether k is present.
func (r *Registry[K, N]) Contains(k K) bool {
	_, ok := r.entries[k]
	r.metrics.RecordLookup(context.Background(), "contains", ok)
	return ok
}

// At returns the node stored under k, or a *KeyError wrapping
// ErrKeyNotFound.
func (r *Registry[K, N]) At(k K) (N, error) {
	n, ok := r.entries[k]
	r.metrics.RecordLookup(context.Background(), "at", ok)
	if !ok {
		observability.LogLookupMiss(r.logger, string(k))
		var zero N
		return zero, &KeyError{Key: string(k), Op: "at", Err: ErrKeyNotFound}
	}
	return n, nil
}

// MustAt returns the node stored under k, panicking if not found.
func (r *Registry[K, N]) MustAt(k K) N {
	n, err := r.At(k)
	if err != nil {
		panic(err)
	}
	return n
}

// Erase removes and releases the node stored under k.
// It reports whether anything was removed.
func (r *Registry[K, N]) Erase(k K) bool {
	n, ok := r.entries[k]
	if ok {
		delete(r.entries, k)
		r.drop(n)
		observability.LogNodeErased(r.logger, string(k))
	}
	r.metrics.RecordErase(context.Background(), ok)
	return ok
}

// Clear releases every node and empties the registry.
func (r *Registry[K, N]) Clear() {
	count := len(r.entries)
	for _, n := range r.entries {
		release(n)
	}
	clear(r.entries)
	clear(r.holds)
	observability.LogRegistryCleared(r.logger, count)
}

// Len returns the number of entries.
func (r *Registry[K, N]) Len() int {
	return len(r.entries)
}

// Keys returns all keys in ascending order.
func (r *Registry[K, N]) Keys() []K {
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Range calls fn for each entry in key order until fn returns false.
// fn must not add or erase entries.
func (r *Registry[K, N]) Range(fn func(K, N) bool) {
	for _, k := range r.Keys() {
		if !fn(k, r.entries[k]) {
			return
		}
	}
}

// Data returns the backing map. Writes through it bypass key traits,
// release and logging; callers are responsible for key well-formedness.
func (r *Registry[K, N]) Data() map[K]N {
	return r.entries
}

func (r *Registry[K, N]) hold(n N) {
	if h, ok := handle(n); ok {
		r.holds[h]++
	}
}

// drop releases n unless another key still holds it.
func (r *Registry[K, N]) drop(n N) {
	if h, ok := handle(n); ok {
		if r.holds[h] > 1 {
			r.holds[h]--
			return
		}
		delete(r.holds, h)
	}
	release(n)
}

// handle returns n as a map key when it is a non-nil pointer.
func handle[N any](n N) (any, bool) {
	v := any(n)
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, false
	}
	return v, true
}

func release[N any](n N) {
	if rel, ok := any(n).(Releaser); ok {
		rel.Release()
	}
}

// same reports whether a and b are the identical node, so re-adding a node
// under its own key does not release it.
func same[N any](a, b N) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == bv
	}
	t := reflect.TypeOf(av)
	if t != reflect.TypeOf(bv) || !t.Comparable() {
		return false
	}
	return av == bv
}

// describe extracts value type and ownership for logs and metrics from nodes
// that expose them.
func describe[N any](n N) (valueType, kind string) {
	valueType, kind = "unknown", "unknown"
	if t, ok := any(n).(interface{ UnderlyingType() reflect.Type }); ok {
		if rt := t.UnderlyingType(); rt != nil {
			valueType = rt.String()
		}
	}
	if o, ok := any(n).(interface{ Ownership() ownership.Kind }); ok {
		kind = o.Ownership().String()
	}
	return valueType, kind
}
