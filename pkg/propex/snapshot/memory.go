package snapshot

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps encoded snapshots in process memory.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]stored
	closed bool
}

type stored struct {
	info Info
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]stored)}
}

// Save implements Store. The snapshot is encoded, so later changes by the
// caller are not seen by the store.
func (m *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := snap.Marshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.data[snap.ID] = stored{info: snap.Info(), data: data}
	return nil
}

// Load implements Store.
func (m *MemoryStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	s, ok := m.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	return Unmarshal(s.data)
}

// List implements Store.
func (m *MemoryStore) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	infos := make([]Info, 0, len(m.data))
	for _, s := range m.data {
		infos = append(infos, s.info)
	}
	sortInfos(infos)
	return infos, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.data, id)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// sortInfos orders by timestamp, then ID for snapshots taken in the same
// instant.
func sortInfos(infos []Info) {
	slices.SortFunc(infos, func(a, b Info) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
