package propex

import "github.com/randalmurphal/propex/pkg/propex/registry"

// Registry is the default registry: string keys joined with ':' mapping to
// type-erased nodes.
type Registry = registry.Registry[string, Node]

// NewRegistry returns an empty default registry.
func NewRegistry(opts ...registry.Option[string]) *Registry {
	return registry.New[string, Node](opts...)
}

// Lookup finds key and recovers its typed node. Absent keys fail with
// ErrKeyNotFound and nodes of another value type with ErrTypeMismatch.
func Lookup[T any, K ~string](r *registry.Registry[K, Node], key K) (*Cell[T], error) {
	n, err := r.At(key)
	if err != nil {
		return nil, err
	}
	return As[T](n)
}

// BindView returns a view bound to the typed node under key.
func BindView[T any, K ~string](r *registry.Registry[K, Node], key K) (*View[T], error) {
	c, err := Lookup[T](r, key)
	if err != nil {
		return nil, err
	}
	return NewView(c), nil
}
