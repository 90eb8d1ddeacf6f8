package snapshot

import "context"

// Store persists snapshots by ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores snap, replacing any snapshot with the same ID.
	Save(ctx context.Context, snap *Snapshot) error

	// Load retrieves a snapshot.
	// Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, id string) (*Snapshot, error)

	// List describes all stored snapshots, oldest first.
	// Returns an empty slice (not error) if there are none.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a snapshot.
	// Returns nil if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Close releases any resources (connections, files).
	Close() error
}
