package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/randalmurphal/propex/pkg/propex"
	"github.com/randalmurphal/propex/pkg/propex/registry"
)

// RestoreResult counts the outcome of a restore.
type RestoreResult struct {
	// Applied is the number of entries written to nodes.
	Applied int
	// Skipped is the number of entries whose key is absent from the registry.
	Skipped int
}

// Capture records every node of reg in key order. Nodes whose value cannot
// be read or encoded fail the capture with an *EntryError.
func Capture[K ~string](reg *registry.Registry[K, propex.Node], label string) (*Snapshot, error) {
	snap := New(label)
	snap.Entries = make([]Entry, 0, reg.Len())

	var err error
	reg.Range(func(k K, n propex.Node) bool {
		var e Entry
		if e, err = capture(string(k), n); err != nil {
			return false
		}
		snap.Entries = append(snap.Entries, e)
		return true
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func capture(k string, n propex.Node) (Entry, error) {
	v, err := n.Value()
	if err != nil {
		return Entry{}, &EntryError{Key: k, Err: err}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return Entry{}, &EntryError{Key: k, Err: fmt.Errorf("encode value: %w", err)}
	}
	return Entry{
		Key:    k,
		Type:   n.UnderlyingType().String(),
		Policy: n.Ownership().String(),
		Value:  raw,
	}, nil
}

// Restore writes snap's values into the matching nodes of reg. Entries for
// absent keys are skipped. Entries that fail are reported together as
// *EntryError values joined into one error; the rest are still applied.
func Restore[K ~string](reg *registry.Registry[K, propex.Node], snap *Snapshot) (RestoreResult, error) {
	var res RestoreResult
	if snap.Version != Version {
		return res, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, snap.Version, Version)
	}

	var errs []error
	for _, e := range snap.Entries {
		n, ok := reg.Find(K(e.Key))
		if !ok {
			res.Skipped++
			continue
		}
		if err := restore(n, e); err != nil {
			errs = append(errs, &EntryError{Key: e.Key, Err: err})
			continue
		}
		res.Applied++
	}
	return res, errors.Join(errs...)
}

func restore(n propex.Node, e Entry) error {
	t := n.UnderlyingType()
	if t.String() != e.Type {
		return fmt.Errorf("%w: node holds %s, snapshot recorded %s", propex.ErrTypeMismatch, t, e.Type)
	}
	ptr := reflect.New(t)
	if err := json.Unmarshal(e.Value, ptr.Interface()); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}
	return n.Assign(ptr.Elem().Interface())
}
