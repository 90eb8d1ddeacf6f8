package propex

// View is a typed handle bound to at most one node. The zero value is
// unbound. Views are move-only: copying one is flagged by go vet, and Move
// transfers the binding while leaving the source unbound.
type View[T any] struct {
	_    noCopy
	cell *Cell[T]
}

// noCopy lets go vet's copylocks check catch copied views.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// NewView returns a view bound to c, or an unbound view if c is nil.
func NewView[T any](c *Cell[T]) *View[T] {
	return &View[T]{cell: c}
}

// Move returns a new view holding this view's binding and unbinds this one.
func (v *View[T]) Move() *View[T] {
	if v == nil {
		return &View[T]{}
	}
	c := v.cell
	v.cell = nil
	return &View[T]{cell: c}
}

// Valid reports whether the view is bound.
func (v *View[T]) Valid() bool {
	return v != nil && v.cell != nil
}

// ReturnsReference mirrors the bound node; an unbound view reports false.
func (v *View[T]) ReturnsReference() bool {
	return v.Valid() && v.cell.ReturnsReference()
}

// Get returns the bound node's value.
func (v *View[T]) Get() (T, error) {
	if !v.Valid() {
		var zero T
		return zero, unbound("get")
	}
	return v.cell.Get()
}

// Set writes through the bound node.
func (v *View[T]) Set(x T) error {
	if !v.Valid() {
		return unbound("set")
	}
	return v.cell.Set(x)
}

// Ref returns the live value of a reference-returning node.
func (v *View[T]) Ref() (*T, error) {
	if !v.Valid() {
		return nil, unbound("ref")
	}
	return v.cell.Ref()
}

// MustGet returns the bound node's value and panics when unbound or when the
// node fails.
func (v *View[T]) MustGet() T {
	if !v.Valid() {
		panic(unbound("get"))
	}
	return v.cell.MustGet()
}

// MustSet writes through the bound node and panics when unbound or when the
// node fails.
func (v *View[T]) MustSet(x T) {
	if !v.Valid() {
		panic(unbound("set"))
	}
	v.cell.MustSet(x)
}

// Assign is MustSet returning the view for chaining.
func (v *View[T]) Assign(x T) *View[T] {
	v.MustSet(x)
	return v
}

func unbound(op string) *ViewError {
	return &ViewError{Op: op, Err: ErrUnboundAccess}
}
