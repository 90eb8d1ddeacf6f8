package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Version is the current snapshot format version.
// Increment when making breaking changes to the encoding.
const Version = 1

// Snapshot is the persisted state of a registry's values.
type Snapshot struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Label     string    `json:"label,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Entries   []Entry   `json:"entries"`
}

// Entry is one node's recorded value.
type Entry struct {
	Key    string          `json:"key"`
	Type   string          `json:"type"`
	Policy string          `json:"policy"`
	Value  json.RawMessage `json:"value"`
}

// Info describes a stored snapshot without its entries.
type Info struct {
	ID        string
	Label     string
	Timestamp time.Time
	Entries   int
}

// New returns an empty snapshot with a fresh ID.
func New(label string) *Snapshot {
	return &Snapshot{
		Version:   Version,
		ID:        uuid.NewString(),
		Label:     label,
		Timestamp: time.Now().UTC(),
	}
}

// Info returns the snapshot's metadata.
func (s *Snapshot) Info() Info {
	return Info{ID: s.ID, Label: s.Label, Timestamp: s.Timestamp, Entries: len(s.Entries)}
}

// Marshal serializes the snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot and rejects other format versions.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.Version, Version)
	}
	return &s, nil
}
