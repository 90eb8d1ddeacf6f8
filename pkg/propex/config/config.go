package config

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/randalmurphal/propex/pkg/propex/key"
)

// Config is a read-only view over decoded configuration.
type Config struct {
	data   map[string]any
	traits key.Traits[string]
}

// Option configures a Config.
type Option func(*Config)

// WithTraits sets the key traits used to resolve composite keys.
// A nil traits value is ignored.
func WithTraits(t key.Traits[string]) Option {
	return func(c *Config) {
		if t != nil {
			c.traits = t
		}
	}
}

// New wraps data. A nil map yields an empty Config.
func New(data map[string]any, opts ...Option) Config {
	if data == nil {
		data = map[string]any{}
	}
	c := Config{data: data, traits: key.Default[string]()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Traits returns the key traits used to resolve keys.
func (c Config) Traits() key.Traits[string] {
	if c.traits == nil {
		return key.Default[string]()
	}
	return c.traits
}

// Lookup resolves k and reports whether it was found. A top-level entry
// named exactly k wins over a nested path.
func (c Config) Lookup(k string) (any, bool) {
	if v, ok := c.data[k]; ok {
		return v, true
	}

	var cur any = c.data
	for _, frag := range c.Traits().Split(k) {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[frag]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether k resolves to a value.
func (c Config) Has(k string) bool {
	_, ok := c.Lookup(k)
	return ok
}

// Any returns the raw value under k, or def.
func (c Config) Any(k string, def any) any {
	if v, ok := c.Lookup(k); ok {
		return v
	}
	return def
}

// String returns the string under k, or def. Scalars are not stringified.
func (c Config) String(k, def string) string {
	if s, ok := c.Any(k, nil).(string); ok {
		return s
	}
	return def
}

// Bool returns the boolean under k, or def. Strings accepted by
// strconv.ParseBool are converted, which covers dotenv sources.
func (c Config) Bool(k string, def bool) bool {
	switch v := c.Any(k, nil).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Int returns the integer under k, or def. Floats convert only when they
// have no fractional part.
func (c Config) Int(k string, def int) int {
	if n, ok := toInt64(c.Any(k, nil)); ok {
		return int(n)
	}
	return def
}

// Int64 is Int for 64-bit values.
func (c Config) Int64(k string, def int64) int64 {
	if n, ok := toInt64(c.Any(k, nil)); ok {
		return n
	}
	return def
}

// Float returns the float under k, or def.
func (c Config) Float(k string, def float64) float64 {
	if f, ok := toFloat64(c.Any(k, nil)); ok {
		return f
	}
	return def
}

// Duration returns the duration under k, or def. Strings are parsed with
// time.ParseDuration and bare numbers are seconds.
func (c Config) Duration(k string, def time.Duration) time.Duration {
	switch v := c.Any(k, nil).(type) {
	case time.Duration:
		return v
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int, int64, float64:
		f, _ := toFloat64(v)
		return time.Duration(f * float64(time.Second))
	}
	return def
}

// StringSlice returns the string list under k, or def if any element is
// not a string.
func (c Config) StringSlice(k string, def []string) []string {
	switch v := c.Any(k, nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	}
	return def
}

// Sub returns the nested section under k, sharing this Config's traits.
// A missing or non-map value yields an empty Config.
func (c Config) Sub(k string) Config {
	m, ok := asMap(c.Any(k, nil))
	if !ok {
		m = map[string]any{}
	}
	return Config{data: m, traits: c.traits}
}

// Keys returns the top-level keys in sorted order.
func (c Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.data))
}

// Raw returns the wrapped map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}

// asMap accepts the map shapes produced by the supported decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}
	return nil, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
			return int64(n), true
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
