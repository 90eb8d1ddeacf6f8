package ownership

// Borrowed points at a T that lives elsewhere. It has no say over the
// target's lifetime and never allocates one.
//
// Changes the owner makes to the target are visible through Get immediately;
// there is no notification.
type Borrowed[T any] struct {
	target *T
}

// Compile-time interface check.
var _ Referencer[int] = (*Borrowed[int])(nil)

// Borrow returns storage bound to target. A nil target yields unbound storage
// whose accessors fail with ErrDanglingTarget.
func Borrow[T any](target *T) *Borrowed[T] {
	return &Borrowed[T]{target: target}
}

// Kind implements Storage.
func (b *Borrowed[T]) Kind() Kind { return KindBorrowed }

// Bound reports whether the storage currently has a target.
func (b *Borrowed[T]) Bound() bool {
	return b.target != nil
}

// Get implements Storage.
func (b *Borrowed[T]) Get() (T, error) {
	if b.target == nil {
		var zero T
		return zero, dangling(KindBorrowed, "get")
	}
	return *b.target, nil
}

// Set implements Storage. It writes through to the target.
func (b *Borrowed[T]) Set(v T) error {
	if b.target == nil {
		return dangling(KindBorrowed, "set")
	}
	*b.target = v
	return nil
}

// Ref implements Referencer.
func (b *Borrowed[T]) Ref() (*T, error) {
	if b.target == nil {
		return nil, dangling(KindBorrowed, "ref")
	}
	return b.target, nil
}

// Release implements Storage. The target itself is untouched.
func (b *Borrowed[T]) Release() {
	b.target = nil
}
