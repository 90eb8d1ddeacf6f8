package snapshot

import (
	"errors"
	"fmt"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("snapshot store closed")

	// ErrVersionMismatch indicates a snapshot written by an incompatible
	// format version.
	ErrVersionMismatch = errors.New("snapshot version mismatch")
)

// EntryError reports the registry key whose capture or restore failed.
type EntryError struct {
	// Key is the registry key.
	Key string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("snapshot entry %q: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EntryError) Unwrap() error {
	return e.Err
}
