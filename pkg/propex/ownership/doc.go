/*
Package ownership defines how a property value is physically held.

# Policies

Four storage disciplines share the Storage interface:

  - Owned: the cell holds its own copy of the value.
  - Borrowed: the cell points at a value owned elsewhere and never allocates.
  - Shared: the cell holds a pointer that other holders may alias.
  - Atomic: the cell holds the value behind an atomic pointer; reads are snapshots.

A policy is chosen when the storage is built and never changes afterwards.

# Return Shape

Owned, Borrowed and Shared expose the live value through Ref, so reads can
observe writes made by other holders of the same value. Atomic only hands out
copies. Kind.ReturnsReference reports which shape a policy has:

	if s.Kind().ReturnsReference() {
	    p, _ := ownership.Ref(s)
	    p.X = 1 // writes through
	}

# Checked and Unchecked Access

Get, Set and Ref return errors. MustGet and MustSet are the unchecked paths
for callers that have already established validity; they panic with an
*AccessError instead of returning a zero value. This holds for every policy,
not only Borrowed.

# Concurrency

None of the policies lock. Concurrent writes to a Shared or Borrowed value
through different holders are the caller's problem. Atomic makes each Get and
Set race-free on its own but offers no read-modify-write.
*/
package ownership
