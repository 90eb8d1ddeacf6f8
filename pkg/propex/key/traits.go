package key

import "strings"

// DefaultDelimiter separates fragments when no other delimiter is configured.
const DefaultDelimiter = ':'

// Traits composes and decomposes keys of type K.
type Traits[K ~string] interface {
	// Split breaks key into its fragments. It never fails.
	Split(key K) []K

	// Merge joins fragments with the delimiter. No fragments yields "".
	Merge(fragments ...K) K

	// Delimiter returns the separator rune.
	Delimiter() rune
}

// Delimited is the standard Traits implementation for delimited string keys.
// The zero value uses DefaultDelimiter.
type Delimited[K ~string] struct {
	delim rune
}

// Compile-time interface check.
var _ Traits[string] = Delimited[string]{}

// New returns traits that use delim as the fragment separator.
func New[K ~string](delim rune) Delimited[K] {
	return Delimited[K]{delim: delim}
}

// Default returns traits using DefaultDelimiter.
func Default[K ~string]() Delimited[K] {
	return Delimited[K]{delim: DefaultDelimiter}
}

// Delimiter implements Traits.
func (d Delimited[K]) Delimiter() rune {
	if d.delim == 0 {
		return DefaultDelimiter
	}
	return d.delim
}

// Split implements Traits.
func (d Delimited[K]) Split(key K) []K {
	raw := strings.Split(string(key), string(d.Delimiter()))
	parts := make([]K, len(raw))
	for i, p := range raw {
		parts[i] = K(p)
	}
	return parts
}

// Merge implements Traits.
func (d Delimited[K]) Merge(fragments ...K) K {
	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0]
	}

	sep := string(d.Delimiter())
	var b strings.Builder
	for i, f := range fragments {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(string(f))
	}
	return K(b.String())
}

var defaultTraits = Default[string]()

// Split splits a string key on DefaultDelimiter.
func Split(key string) []string {
	return defaultTraits.Split(key)
}

// Merge joins string fragments with DefaultDelimiter.
func Merge(fragments ...string) string {
	return defaultTraits.Merge(fragments...)
}
