package registry

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound indicates a checked lookup on a key that is not present.
var ErrKeyNotFound = errors.New("key not found")

// KeyError wraps a failed keyed operation with the key involved.
type KeyError struct {
	// Key is the composite key that was looked up.
	Key string
	// Op is the operation that failed (e.g., "at").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("registry %s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *KeyError) Unwrap() error {
	return e.Err
}
