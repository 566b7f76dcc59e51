package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"boothvpm/internal/catalog"
	"boothvpm/internal/testsupport"
	"boothvpm/internal/vpm"
)

func sampleItem(dir string) catalog.Item {
	return catalog.Item{
		ID:          "100",
		Title:       "Cool Prop",
		Description: "A prop",
		SourceURL:   "https://booth.pm/items/100",
		AssetFolder: filepath.Join(dir, "100_Cool Prop"),
		Creator:     "Booth",
	}
}

func TestOpenCreatesSchemaAndReopens(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	testsupport.MustUpsert(t, store, sampleItem(t.TempDir()))
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenCatalog(t, cfg)
	item, err := reopened.Get(context.Background(), "100")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item == nil || item.Title != "Cool Prop" {
		t.Fatalf("expected item to survive reopen, got %#v", item)
	}
	if reopened.Path() != cfg.CatalogPath() {
		t.Fatalf("unexpected db path %q", reopened.Path())
	}
}

func TestUpsertRefreshesMetadataButKeepsPackageState(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenCatalog(t, cfg)
	ctx := context.Background()

	item := sampleItem(t.TempDir())
	testsupport.MustUpsert(t, store, item)
	if err := store.RecordPackage(ctx, "100", "com.booth.cool.prop.100", "1.0.0", true); err != nil {
		t.Fatalf("RecordPackage: %v", err)
	}

	item.Title = "Cool Prop v2"
	saved := testsupport.MustUpsert(t, store, item)
	if saved.Title != "Cool Prop v2" {
		t.Fatalf("expected refreshed title, got %q", saved.Title)
	}
	if !saved.Packaged || saved.PackageID != "com.booth.cool.prop.100" || saved.PackageVersion != "1.0.0" {
		t.Fatalf("package state lost on refresh: %#v", saved)
	}
	if saved.LastPackaged == nil {
		t.Fatal("expected last packaged time")
	}
}

func TestUpsertValidatesRequiredFields(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	cases := []catalog.Item{
		{Title: "t", AssetFolder: "/x"},
		{ID: "1", AssetFolder: "/x"},
		{ID: "1", Title: "t"},
	}
	for _, item := range cases {
		if _, err := store.Upsert(context.Background(), item); !errors.Is(err, catalog.ErrInvalidItem) {
			t.Errorf("Upsert(%+v) error = %v, want ErrInvalidItem", item, err)
		}
	}
}

func TestRecordPackageClearsIdentityOnUnpackage(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.MustUpsert(t, store, sampleItem(t.TempDir()))

	if err := store.RecordPackage(ctx, "100", "com.booth.cool.prop.100", "1.0.0", true); err != nil {
		t.Fatalf("RecordPackage packaged: %v", err)
	}
	packaged, err := store.ListPackaged(ctx)
	if err != nil {
		t.Fatalf("ListPackaged: %v", err)
	}
	if len(packaged) != 1 {
		t.Fatalf("expected 1 packaged item, got %d", len(packaged))
	}

	if err := store.RecordPackage(ctx, "100", "com.booth.cool.prop.100", "1.0.0", false); err != nil {
		t.Fatalf("RecordPackage unpackaged: %v", err)
	}
	item, err := store.Get(ctx, "100")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Packaged || item.PackageID != "" || item.PackageVersion != "" {
		t.Fatalf("expected cleared package state, got %#v", item)
	}
	if item.LastPackaged == nil {
		t.Fatal("expected last packaged time to be kept")
	}
	packaged, err = store.ListPackaged(ctx)
	if err != nil {
		t.Fatalf("ListPackaged: %v", err)
	}
	if len(packaged) != 0 {
		t.Fatalf("expected no packaged items, got %d", len(packaged))
	}
}

func TestRecordPackageUnknownItem(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	err := store.RecordPackage(context.Background(), "missing", "com.x.y.missing", "1.0.0", true)
	if !errors.Is(err, catalog.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestStoreSatisfiesRecorder(t *testing.T) {
	var _ vpm.Recorder = (*catalog.Store)(nil)
}

func TestListRemoveAndStats(t *testing.T) {
	store := testsupport.MustOpenCatalog(t, testsupport.NewConfig(t))
	ctx := context.Background()
	dir := t.TempDir()

	for _, id := range []string{"300", "100", "200"} {
		item := sampleItem(dir)
		item.ID = id
		testsupport.MustUpsert(t, store, item)
	}
	if err := store.RecordPackage(ctx, "200", "com.booth.cool.prop.200", "1.0.0", true); err != nil {
		t.Fatalf("RecordPackage: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 || items[0].ID != "100" || items[2].ID != "300" {
		t.Fatalf("expected items ordered by id, got %v", ids(items))
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Items != 3 || stats.Packaged != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	removed, err := store.Remove(ctx, "100")
	if err != nil || !removed {
		t.Fatalf("Remove existing = %v, %v", removed, err)
	}
	removed, err = store.Remove(ctx, "100")
	if err != nil || removed {
		t.Fatalf("Remove missing = %v, %v", removed, err)
	}
	missing, err := store.Get(ctx, "100")
	if err != nil || missing != nil {
		t.Fatalf("expected nil item after remove, got %#v, %v", missing, err)
	}
}

func TestToVPMItemsCarriesPackageState(t *testing.T) {
	items := []*catalog.Item{
		{ID: "1", Title: "A", AssetFolder: "/a", PackageID: "com.x.a.1", Packaged: true},
		nil,
	}
	out := catalog.ToVPMItems(items)
	if len(out) != 1 {
		t.Fatalf("expected nil entries skipped, got %d", len(out))
	}
	if !out[0].IsPackaged() || out[0].AssetFolder != "/a" {
		t.Fatalf("unexpected vpm item %#v", out[0])
	}
}

func ids(items []*catalog.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
