package ownership

// Owned holds a private copy of a T.
//
// The copy is shallow: if T contains pointers, maps or slices, those are
// still shared with whatever the caller passed in.
type Owned[T any] struct {
	value    T
	released bool
}

// Compile-time interface check.
var _ Referencer[int] = (*Owned[int])(nil)

// NewOwned returns storage holding a copy of v.
func NewOwned[T any](v T) *Owned[T] {
	return &Owned[T]{value: v}
}

// Kind implements Storage.
func (o *Owned[T]) Kind() Kind { return KindOwned }

// Get implements Storage.
func (o *Owned[T]) Get() (T, error) {
	if o.released {
		var zero T
		return zero, dangling(KindOwned, "get")
	}
	return o.value, nil
}

// Set implements Storage.
func (o *Owned[T]) Set(v T) error {
	if o.released {
		return dangling(KindOwned, "set")
	}
	o.value = v
	return nil
}

// Ref implements Referencer. The pointer is only valid until Release.
func (o *Owned[T]) Ref() (*T, error) {
	if o.released {
		return nil, dangling(KindOwned, "ref")
	}
	return &o.value, nil
}

// Release implements Storage.
func (o *Owned[T]) Release() {
	var zero T
	o.value = zero
	o.released = true
}
