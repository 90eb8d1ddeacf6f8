package propex

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/randalmurphal/propex/pkg/propex/ownership"
	"github.com/randalmurphal/propex/pkg/propex/registry"
)

// Sentinel errors raised by views and typed access.
var (
	// ErrUnboundAccess indicates a checked view access while the view has no node.
	ErrUnboundAccess = errors.New("unbound view access")

	// ErrTypeMismatch indicates a value or node of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Errors raised by the layers below, re-exported so hosts can match every
// failure kind against this package.
var (
	// ErrKeyNotFound indicates a checked registry lookup on an absent key.
	ErrKeyNotFound = registry.ErrKeyNotFound

	// ErrDanglingTarget indicates access to storage without a live value.
	ErrDanglingTarget = ownership.ErrDanglingTarget

	// ErrSnapshotOnly indicates a live reference requested from atomic storage.
	ErrSnapshotOnly = ownership.ErrSnapshotOnly

	// ErrBorrowRequiresTarget indicates a borrowed node built without a target.
	ErrBorrowRequiresTarget = ownership.ErrBorrowRequiresTarget
)

// ViewError wraps a failed view access.
type ViewError struct {
	// Op is the operation that failed ("get", "set", "ref").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ViewError) Error() string {
	return fmt.Sprintf("property view: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ViewError) Unwrap() error {
	return e.Err
}

// TypeError describes a value type that does not fit a node.
type TypeError struct {
	// Want is the node's value type.
	Want reflect.Type
	// Got is the offered type; nil for an untyped nil.
	Got reflect.Type
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	got := "<nil>"
	if e.Got != nil {
		got = e.Got.String()
	}
	return fmt.Sprintf("%v: want %s, got %s", ErrTypeMismatch, e.Want, got)
}

// Unwrap returns ErrTypeMismatch for errors.Is support.
func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}
