package main

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"boothvpm/internal/catalog"
	"boothvpm/internal/testsupport"
	"boothvpm/internal/vpm"
)

func TestItemsImportAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	folder := newImportableFolder(t, env, "100_Cool Prop", coolPropSidecar())

	out, _, err := runCLI(t, env.configPath, "items", "import", folder)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 100: Cool Prop")

	out, _, err = runCLI(t, env.configPath, "items", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var items []itemView
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode items %q: %v", out, err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != "100" || items[0].AssetFolder != folder || items[0].Packaged {
		t.Fatalf("unexpected item %+v", items[0])
	}

	out, _, err = runCLI(t, env.configPath, "items", "list")
	if err != nil {
		t.Fatalf("list table: %v", err)
	}
	requireContains(t, out, "Cool Prop")

	out, _, err = runCLI(t, env.configPath, "items", "list", "--packaged")
	if err != nil {
		t.Fatalf("list packaged: %v", err)
	}
	requireContains(t, out, "No items imported.")
}

func TestItemsImportSkipsInvalidFolders(t *testing.T) {
	env := setupCLITestEnv(t)
	good := newImportableFolder(t, env, "100_Cool Prop", coolPropSidecar())
	bad := testsupport.NewAssetFolder(t, env.baseDir, "no-sidecar", map[string]string{"a.txt": "a"})

	out, stderr, err := runCLI(t, env.configPath, "items", "import", bad, good)
	if err == nil {
		t.Fatal("expected error when a folder cannot be imported")
	}
	requireContains(t, stderr, "Skipped "+bad)
	requireContains(t, out, "Imported 100: Cool Prop")
}

func TestItemsImportAutoPackages(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAutoPackage())
	folder := newImportableFolder(t, env, "100_Cool Prop", coolPropSidecar())

	out, _, err := runCLI(t, env.configPath, "items", "import", folder)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	identifier := vpm.DeriveIdentifier("Maker", "Cool Prop", "100")
	requireContains(t, out, "Created package "+identifier)

	store := testsupport.MustOpenCatalog(t, env.cfg)
	item, err := store.Get(t.Context(), "100")
	if err != nil || item == nil {
		t.Fatalf("get item: %v %v", item, err)
	}
	if !item.Packaged || item.PackageID != identifier || item.PackageVersion != vpm.PackageVersion {
		t.Fatalf("package state not recorded: %+v", item)
	}
}

func TestItemsRemoveUnpackagesFirst(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithAutoPackage())
	folder := newImportableFolder(t, env, "100_Cool Prop", coolPropSidecar())
	if _, _, err := runCLI(t, env.configPath, "items", "import", folder); err != nil {
		t.Fatalf("import: %v", err)
	}
	identifier := vpm.DeriveIdentifier("Maker", "Cool Prop", "100")
	packageDir := repositoryFromConfig(env.cfg).PackageDir(identifier)

	out, _, err := runCLI(t, env.configPath, "items", "remove", "100")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, "Removed package "+identifier)
	requireContains(t, out, "Removed item 100 from the catalog.")
	if _, err := os.Stat(packageDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("package dir should be gone, stat err=%v", err)
	}

	_, _, err = runCLI(t, env.configPath, "items", "remove", "100")
	if !errors.Is(err, catalog.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}
