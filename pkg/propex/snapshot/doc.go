/*
Package snapshot captures registry values and persists them.

# Overview

A Snapshot records the value, type name and policy of every node in a
registry. Restoring writes the recorded values back into the nodes that are
still present: the registry's shape is never changed, only its values.

	snap, err := snapshot.Capture(reg, "before-tuning")
	...
	res, err := snapshot.Restore(reg, snap)
	fmt.Println(res.Applied, res.Skipped)

Values are encoded with encoding/json and decoded into the node's own type,
so any JSON-representable value round-trips.

# Stores

Store persists snapshots by ID. Three implementations are provided:
  - MemoryStore: in-process, for tests
  - SQLiteStore: a single file via modernc.org/sqlite
  - DynamoStore: one item per snapshot in a DynamoDB table

Manager ties capture, restore and a store together and reports each
operation through slog, OpenTelemetry spans and metrics:

	mgr := snapshot.NewManager[string](store,
	    snapshot.WithLogger(logger),
	    snapshot.WithMetrics(observability.NewMetricsRecorder()),
	)
	id, err := mgr.Save(ctx, reg, "nightly")
	res, err := mgr.Restore(ctx, reg, id)

# Thread Safety

Stores are safe for concurrent use. Capture and Restore read and write the
registry without locking; wrap the registry in registry.Locked and call them
from Locked.Do when it is shared.
*/
package snapshot
