package registry

import (
	"sync"

	"github.com/randalmurphal/propex/pkg/propex/key"
)

// Locked serializes access to a Registry with a sync.RWMutex.
// Lookups take the read lock; Add, Erase and Clear take the write lock.
//
// Locking only covers the map. Nodes handed out by Find or At are not
// protected; concurrent use of a node follows its ownership policy.
type Locked[K ~string, N any] struct {
	mu  sync.RWMutex
	reg *Registry[K, N]
}

// NewLocked creates an empty synchronized registry.
func NewLocked[K ~string, N any](opts ...Option[K]) *Locked[K, N] {
	return &Locked[K, N]{reg: New[K, N](opts...)}
}

// Traits returns the key traits used to compose keys.
func (l *Locked[K, N]) Traits() key.Traits[K] {
	return l.reg.Traits()
}

// Add stores node under the composed key, replacing any previous node.
func (l *Locked[K, N]) Add(node N, first K, rest ...K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reg.Add(node, first, rest...)
}

// Find returns the node stored under k, if any.
func (l *Locked[K, N]) Find(k K) (N, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Find(k)
}

// Contains reports whether k is present.
func (l *Locked[K, N]) Contains(k K) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Contains(k)
}

// At returns the node stored under k or a *KeyError wrapping ErrKeyNotFound.
func (l *Locked[K, N]) At(k K) (N, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.At(k)
}

// Erase removes and releases the node stored under k.
func (l *Locked[K, N]) Erase(k K) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Erase(k)
}

// Clear releases every node and empties the registry.
func (l *Locked[K, N]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reg.Clear()
}

// Len returns the number of entries.
func (l *Locked[K, N]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Len()
}

// Keys returns all keys in ascending order.
func (l *Locked[K, N]) Keys() []K {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Keys()
}

// Range iterates over a snapshot of the entries in key order, so fn may call
// back into the registry.
func (l *Locked[K, N]) Range(fn func(K, N) bool) {
	l.mu.RLock()
	keys := l.reg.Keys()
	snapshot := make([]N, len(keys))
	for i, k := range keys {
		snapshot[i] = l.reg.entries[k]
	}
	l.mu.RUnlock()

	for i, k := range keys {
		if !fn(k, snapshot[i]) {
			return
		}
	}
}

// GetOrAdd returns the node under k, creating and adding it with factory if
// absent. factory runs at most once per key, even under concurrent callers.
func (l *Locked[K, N]) GetOrAdd(k K, factory func() N) N {
	l.mu.RLock()
	n, ok := l.reg.entries[k]
	l.mu.RUnlock()
	if ok {
		return n
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if n, ok := l.reg.entries[k]; ok {
		return n
	}
	n = factory()
	l.reg.Add(n, k)
	return n
}

// Do runs fn with exclusive access to the underlying registry, for compound
// operations that must not interleave with other callers.
func (l *Locked[K, N]) Do(fn func(r *Registry[K, N])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.reg)
}
