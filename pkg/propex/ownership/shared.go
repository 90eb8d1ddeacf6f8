package ownership

// Shared holds a pointer to a T that any number of holders may alias.
//
// The value stays alive for as long as any holder, inside or outside the
// cell, keeps the pointer; the garbage collector plays the role of the
// reference count.
type Shared[T any] struct {
	ptr *T
}

// Compile-time interface check.
var _ Referencer[int] = (*Shared[int])(nil)

// Share allocates a new shared value initialized from v.
func Share[T any](v T) *Shared[T] {
	p := new(T)
	*p = v
	return &Shared[T]{ptr: p}
}

// Adopt wraps an existing shared pointer. The caller keeps its own alias.
func Adopt[T any](p *T) *Shared[T] {
	return &Shared[T]{ptr: p}
}

// Kind implements Storage.
func (s *Shared[T]) Kind() Kind { return KindShared }

// Handle returns the shared pointer so other holders can alias it.
// It returns nil after Release.
func (s *Shared[T]) Handle() *T {
	return s.ptr
}

// Get implements Storage.
func (s *Shared[T]) Get() (T, error) {
	if s.ptr == nil {
		var zero T
		return zero, dangling(KindShared, "get")
	}
	return *s.ptr, nil
}

// Set implements Storage. Every alias observes the write.
func (s *Shared[T]) Set(v T) error {
	if s.ptr == nil {
		return dangling(KindShared, "set")
	}
	*s.ptr = v
	return nil
}

// Ref implements Referencer.
func (s *Shared[T]) Ref() (*T, error) {
	if s.ptr == nil {
		return nil, dangling(KindShared, "ref")
	}
	return s.ptr, nil
}

// Release implements Storage. It drops this cell's alias only.
func (s *Shared[T]) Release() {
	s.ptr = nil
}
