package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/propex/pkg/propex/snapshot"
)

// BenchmarkCapture_1000 measures capturing a 1000-entry registry.
func BenchmarkCapture_1000(b *testing.B) {
	reg := populated(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = snapshot.Capture(reg, "")
	}
}

// BenchmarkRestore_1000 measures restoring a 1000-entry registry.
func BenchmarkRestore_1000(b *testing.B) {
	reg := populated(1000)
	snap, err := snapshot.Capture(reg, "")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = snapshot.Restore(reg, snap)
	}
}

// BenchmarkMemoryStore_Save measures in-memory snapshot save.
func BenchmarkMemoryStore_Save(b *testing.B) {
	benchmarkSave(b, snapshot.NewMemoryStore())
}

// BenchmarkSQLiteStore_Save measures SQLite snapshot save.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store, err := snapshot.NewSQLiteStore(b.TempDir() + "/bench.db")
	if err != nil {
		b.Fatal(err)
	}
	benchmarkSave(b, store)
}

// BenchmarkSQLiteStore_Load measures SQLite snapshot load.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	ctx := context.Background()
	store, err := snapshot.NewSQLiteStore(":memory:")
	if err != nil {
		b.Fatal(err)
	}
	defer store.Close()

	snap, _ := snapshot.Capture(populated(100), "")
	if err := store.Save(ctx, snap); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load(ctx, snap.ID)
	}
}

func benchmarkSave(b *testing.B, store snapshot.Store) {
	ctx := context.Background()
	defer store.Close()

	snap, err := snapshot.Capture(populated(100), "")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(ctx, snap)
	}
}
