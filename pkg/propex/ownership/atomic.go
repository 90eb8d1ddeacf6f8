package ownership

import "sync/atomic"

// Atomic holds a T behind an atomic pointer. Each Set publishes a fresh copy,
// so Get always returns a consistent snapshot even for multi-word types.
//
// Go atomics are sequentially consistent, which is stronger than the relaxed
// ordering the policy needs. Get followed by Set is not atomic as a pair.
type Atomic[T any] struct {
	p atomic.Pointer[T]
}

// Compile-time interface check.
var _ Storage[int] = (*Atomic[int])(nil)

// NewAtomic returns atomic storage initialized with v.
func NewAtomic[T any](v T) *Atomic[T] {
	a := &Atomic[T]{}
	a.p.Store(&v)
	return a
}

// Kind implements Storage.
func (a *Atomic[T]) Kind() Kind { return KindAtomic }

// Get implements Storage. The result is a copy.
func (a *Atomic[T]) Get() (T, error) {
	p := a.p.Load()
	if p == nil {
		var zero T
		return zero, dangling(KindAtomic, "get")
	}
	return *p, nil
}

// Set implements Storage.
func (a *Atomic[T]) Set(v T) error {
	// CAS so a Set racing with Release cannot bring the cell back.
	for {
		old := a.p.Load()
		if old == nil {
			return dangling(KindAtomic, "set")
		}
		if a.p.CompareAndSwap(old, &v) {
			return nil
		}
	}
}

// Release implements Storage.
func (a *Atomic[T]) Release() {
	a.p.Store(nil)
}
