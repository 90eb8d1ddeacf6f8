package config

import (
	"maps"
	"slices"
)

// Flatten returns every leaf value keyed by its composite key. Nested maps
// contribute their path; anything else, including lists, is a leaf.
func (c Config) Flatten() map[string]any {
	out := make(map[string]any)
	c.Walk(func(k string, v any) bool {
		out[k] = v
		return true
	})
	return out
}

// Walk visits leaves in sorted key order until fn returns false.
func (c Config) Walk(fn func(key string, value any) bool) {
	merge := c.Traits().Merge
	walk(nil, c.data, nil, func(path []string, v any) bool {
		return fn(merge(path...), v)
	})
}

// WalkPaths is like Walk but hands fn the unmerged key fragments, and lets
// stop decide, per nested map, whether to treat the map as a leaf instead of
// descending into it. A nil stop always descends.
func (c Config) WalkPaths(stop func(m map[string]any) bool, fn func(path []string, value any) bool) {
	walk(nil, c.data, stop, fn)
}

func walk(prefix []string, m map[string]any, stop func(map[string]any) bool, fn func([]string, any) bool) bool {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		path := append(slices.Clip(prefix), k)
		v := m[k]
		if sub, ok := asMap(v); ok && (stop == nil || !stop(sub)) {
			if !walk(path, sub, stop, fn) {
				return false
			}
			continue
		}
		if !fn(path, v) {
			return false
		}
	}
	return true
}
