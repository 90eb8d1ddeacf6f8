/*
Package propex provides typed property cells addressed by composite keys.

# Overview

A property is a single value of a fixed type held by one of four ownership
policies. Properties live in a registry under keys built from fragments, and
typed views give checked and unchecked access to them.

The package is layered:
  - key: splitting and joining composite keys
  - ownership: the Owned, Borrowed, Shared and Atomic storage policies
  - propex (this package): Node, Cell, View and typed lookup
  - registry: the flat owning map from keys to nodes

Around the core, config, seed and snapshot load registries from
configuration files and persist their values.

# Basic Usage

	reg := propex.NewRegistry()
	reg.Add(propex.NewOwned(42), "carA", "speed")

	speed, err := propex.BindView[int](reg, "carA:speed")
	if err != nil {
	    log.Fatal(err)
	}
	speed.MustSet(55)
	fmt.Println(speed.MustGet()) // 55

# Ownership Policies

	propex.NewOwned(v)       // cell holds its own copy
	propex.NewBorrowed(&v)   // cell reads and writes the caller's variable
	propex.NewShared(v)      // cell holds a pointer other holders may alias
	propex.NewAtomic(v)      // loads and stores are atomic; reads are copies

Owned, Borrowed and Shared cells return references: Ref yields the live
value. Atomic cells only return snapshots, and Ref fails with
ErrSnapshotOnly.

# Views

A View is bound to at most one cell. Checked access (Get, Set, Ref) returns
ErrUnboundAccess on an unbound view; unchecked access (MustGet, MustSet)
panics. Views are move-only:

	a := propex.NewView(cell)
	b := a.Move()
	a.Valid() // false
	b.Valid() // true

# Lifetime

A registry releases the nodes it drops on Erase, Clear and overwrite.
A released node fails every access with ErrDanglingTarget, and views bound
to it observe the same failure.

# Error Handling

Every sentinel is reachable from this package:

	_, err := propex.Lookup[string](reg, "carA:speed")
	errors.Is(err, propex.ErrTypeMismatch) // true: the cell holds an int

# Thread Safety

Cells and registries are not synchronized. Atomic cells are safe for
concurrent Get and Set; registry.Locked serializes a registry.
*/
package propex
