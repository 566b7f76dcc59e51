package testsupport

import (
	"context"
	"testing"

	"boothvpm/internal/catalog"
	"boothvpm/internal/config"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustUpsert registers an item in the catalog.
func MustUpsert(t testing.TB, store *catalog.Store, item catalog.Item) *catalog.Item {
	t.Helper()

	saved, err := store.Upsert(context.Background(), item)
	if err != nil {
		t.Fatalf("store.Upsert: %v", err)
	}
	return saved
}
