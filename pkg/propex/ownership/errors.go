package ownership

import (
	"errors"
	"fmt"
)

// Sentinel errors for policy access.
var (
	// ErrDanglingTarget indicates the storage has no live value: a Borrowed or
	// Shared cell with a nil target, or any storage after Release.
	ErrDanglingTarget = errors.New("dangling target")

	// ErrSnapshotOnly indicates a live reference was requested from storage
	// that only returns copies.
	ErrSnapshotOnly = errors.New("storage returns snapshots only")

	// ErrBorrowRequiresTarget indicates Make was asked to build Borrowed
	// storage from a value. Borrowed storage never allocates.
	ErrBorrowRequiresTarget = errors.New("borrowed storage requires an external target")

	// ErrUnknownKind indicates a Kind outside the four defined policies.
	ErrUnknownKind = errors.New("unknown ownership kind")
)

// AccessError wraps a failed policy access with the policy and operation.
type AccessError struct {
	// Kind is the policy of the storage that failed.
	Kind Kind
	// Op is the operation that failed ("get", "set", "ref").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AccessError) Error() string {
	return fmt.Sprintf("%s storage: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AccessError) Unwrap() error {
	return e.Err
}

func dangling(k Kind, op string) error {
	return &AccessError{Kind: k, Op: op, Err: ErrDanglingTarget}
}
