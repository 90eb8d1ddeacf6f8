package propex

import (
	"reflect"

	"github.com/randalmurphal/propex/pkg/propex/ownership"
)

// Node is the type-erased view of a property cell. Registries and other
// heterogeneous containers hold Nodes; typed code recovers the concrete
// *Cell[T] with As after checking UnderlyingType.
type Node interface {
	// UnderlyingType returns the value type, fixed at construction.
	UnderlyingType() reflect.Type

	// Ownership returns the storage policy, fixed at construction.
	Ownership() ownership.Kind

	// ReturnsReference reports whether reads expose the live value.
	ReturnsReference() bool

	// Value reads the current value boxed in an any.
	Value() (any, error)

	// Assign writes v after converting it to the value type. nil stores the
	// zero value for interface, pointer, map, slice, func and chan types.
	// Values that cannot be converted fail with a *TypeError.
	Assign(v any) error

	// Release detaches the node from its value. Called by the owning
	// registry on erase, overwrite and clear.
	Release()
}

// Cell is the concrete node: a value of type T held by one ownership policy.
type Cell[T any] struct {
	storage ownership.Storage[T]
}

// Compile-time interface check.
var _ Node = (*Cell[int])(nil)

// NewCell wraps storage in a node. It panics if storage is nil.
func NewCell[T any](storage ownership.Storage[T]) *Cell[T] {
	if storage == nil {
		panic("propex: nil storage")
	}
	return &Cell[T]{storage: storage}
}

// NewOwned returns a node holding its own copy of v.
func NewOwned[T any](v T) *Cell[T] {
	return NewCell[T](ownership.NewOwned(v))
}

// NewBorrowed returns a node reading and writing through target, which must
// outlive the node.
func NewBorrowed[T any](target *T) *Cell[T] {
	return NewCell[T](ownership.Borrow(target))
}

// NewShared returns a node holding a freshly allocated shared value.
func NewShared[T any](v T) *Cell[T] {
	return NewCell[T](ownership.Share(v))
}

// AdoptShared returns a node aliasing the caller's shared pointer p.
func AdoptShared[T any](p *T) *Cell[T] {
	return NewCell[T](ownership.Adopt(p))
}

// NewAtomic returns a node holding v in atomic storage.
func NewAtomic[T any](v T) *Cell[T] {
	return NewCell[T](ownership.NewAtomic(v))
}

// MakeCell builds a node of the given policy from an initial value.
// Borrowed nodes cannot be built this way; see MakeCellFrom.
func MakeCell[T any](kind ownership.Kind, v T) (*Cell[T], error) {
	s, err := ownership.Make(kind, v)
	if err != nil {
		return nil, err
	}
	return NewCell(s), nil
}

// MakeCellFrom builds a node of the given policy around target.
// Borrowed and Shared alias target; Owned and Atomic copy it.
func MakeCellFrom[T any](kind ownership.Kind, target *T) (*Cell[T], error) {
	s, err := ownership.MakeFrom(kind, target)
	if err != nil {
		return nil, err
	}
	return NewCell(s), nil
}

// UnderlyingType implements Node.
func (c *Cell[T]) UnderlyingType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Ownership implements Node.
func (c *Cell[T]) Ownership() ownership.Kind {
	return c.storage.Kind()
}

// ReturnsReference implements Node.
func (c *Cell[T]) ReturnsReference() bool {
	return c.storage.Kind().ReturnsReference()
}

// Storage returns the policy storage, e.g. to reach a Shared handle.
func (c *Cell[T]) Storage() ownership.Storage[T] {
	return c.storage
}

// Get returns the current value.
func (c *Cell[T]) Get() (T, error) {
	return c.storage.Get()
}

// MustGet returns the current value and panics if the policy fails.
func (c *Cell[T]) MustGet() T {
	return ownership.MustGet(c.storage)
}

// Set writes v through the policy.
func (c *Cell[T]) Set(v T) error {
	return c.storage.Set(v)
}

// MustSet writes v and panics if the policy fails.
func (c *Cell[T]) MustSet(v T) {
	ownership.MustSet(c.storage, v)
}

// Ref returns the live value for reference policies and ErrSnapshotOnly for
// atomic storage.
func (c *Cell[T]) Ref() (*T, error) {
	return ownership.Ref(c.storage)
}

// Value implements Node.
func (c *Cell[T]) Value() (any, error) {
	v, err := c.storage.Get()
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Assign implements Node. A nil value clears cells whose type has a nil
// zero value.
func (c *Cell[T]) Assign(v any) error {
	if tv, ok := v.(T); ok {
		return c.storage.Set(tv)
	}

	want := reflect.TypeFor[T]()
	if v == nil {
		if !nillable(want) {
			return &TypeError{Want: want}
		}
		var zero T
		return c.storage.Set(zero)
	}

	rv := reflect.ValueOf(v)
	if !convertible(rv, want) {
		return &TypeError{Want: want, Got: rv.Type()}
	}
	return c.storage.Set(rv.Convert(want).Interface().(T))
}

// Release implements Node.
func (c *Cell[T]) Release() {
	if c == nil || c.storage == nil {
		return
	}
	c.storage.Release()
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

// convertible is reflect's ConvertibleTo minus integer-to-string, which
// yields a rune rather than the number's text, and minus slice-to-array
// conversions the slice is too short for.
func convertible(from reflect.Value, to reflect.Type) bool {
	ft := from.Type()
	if to.Kind() == reflect.String {
		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return false
		}
	}
	if !ft.ConvertibleTo(to) {
		return false
	}
	if ft.Kind() == reflect.Slice {
		switch {
		case to.Kind() == reflect.Array:
			return from.Len() >= to.Len()
		case to.Kind() == reflect.Pointer && to.Elem().Kind() == reflect.Array:
			return from.Len() >= to.Elem().Len()
		}
	}
	return true
}

// As recovers the concrete node for value type T.
func As[T any](n Node) (*Cell[T], error) {
	want := reflect.TypeFor[T]()
	if n == nil {
		return nil, &TypeError{Want: want}
	}
	if got := n.UnderlyingType(); got != want {
		return nil, &TypeError{Want: want, Got: got}
	}
	c, ok := n.(*Cell[T])
	if !ok {
		return nil, &TypeError{Want: want, Got: reflect.TypeOf(n)}
	}
	return c, nil
}
