package ownership

import "fmt"

// Make builds storage of the given kind from an initial value.
//
// Owned and Atomic copy v, Shared allocates a new shared value. Borrowed
// cannot be built from a value and returns ErrBorrowRequiresTarget.
func Make[T any](kind Kind, v T) (Storage[T], error) {
	switch kind {
	case KindOwned:
		return NewOwned(v), nil
	case KindShared:
		return Share(v), nil
	case KindAtomic:
		return NewAtomic(v), nil
	case KindBorrowed:
		return nil, ErrBorrowRequiresTarget
	default:
		return nil, fmt.Errorf("make storage: %w: %d", ErrUnknownKind, kind)
	}
}

// MakeFrom builds storage of the given kind around an existing value.
//
// Borrowed borrows target and Shared adopts it, so both keep aliasing it.
// Owned and Atomic copy *target and never look at it again.
func MakeFrom[T any](kind Kind, target *T) (Storage[T], error) {
	if target == nil {
		return nil, &AccessError{Kind: kind, Op: "make", Err: ErrDanglingTarget}
	}
	switch kind {
	case KindOwned:
		return NewOwned(*target), nil
	case KindBorrowed:
		return Borrow(target), nil
	case KindShared:
		return Adopt(target), nil
	case KindAtomic:
		return NewAtomic(*target), nil
	default:
		return nil, fmt.Errorf("make storage: %w: %d", ErrUnknownKind, kind)
	}
}

// Ref returns the live value behind s, or ErrSnapshotOnly when the policy
// only hands out copies.
func Ref[T any](s Storage[T]) (*T, error) {
	r, ok := s.(Referencer[T])
	if !ok {
		return nil, &AccessError{Kind: s.Kind(), Op: "ref", Err: ErrSnapshotOnly}
	}
	return r.Ref()
}

// MustGet reads s and panics if the read fails.
func MustGet[T any](s Storage[T]) T {
	v, err := s.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// MustSet writes v to s and panics if the write fails.
func MustSet[T any](s Storage[T], v T) {
	if err := s.Set(v); err != nil {
		panic(err)
	}
}
