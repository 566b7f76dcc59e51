package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"boothvpm/internal/catalog"
	"boothvpm/internal/testsupport"
)

func TestItemFromSidecar(t *testing.T) {
	folder := testsupport.NewAssetFolder(t, t.TempDir(), "100_Cool Prop", map[string]string{"model.fbx": "fbx"})
	testsupport.WriteSidecar(t, folder, map[string]any{
		"url":         "https://booth.pm/en/items/100",
		"item_id":     "100",
		"title":       " Cool Prop ",
		"description": "A prop",
		"creator":     "Booth",
		"images":      []string{"https://example.com/a.png"},
	})

	item, err := catalog.ItemFromSidecar(folder)
	if err != nil {
		t.Fatalf("ItemFromSidecar: %v", err)
	}
	if item.ID != "100" || item.Title != "Cool Prop" || item.Creator != "Booth" {
		t.Fatalf("unexpected item %#v", item)
	}
	if item.AssetFolder != folder {
		t.Fatalf("expected absolute folder %q, got %q", folder, item.AssetFolder)
	}
}

func TestItemFromSidecarIDFallbacks(t *testing.T) {
	dir := t.TempDir()

	numeric := testsupport.NewAssetFolder(t, dir, "numeric", nil)
	testsupport.WriteSidecar(t, numeric, map[string]any{"item_id": 4242, "title": "Numeric"})
	item, err := catalog.ItemFromSidecar(numeric)
	if err != nil || item.ID != "4242" {
		t.Fatalf("numeric item_id: got %q, %v", item.ID, err)
	}

	fromURL := testsupport.NewAssetFolder(t, dir, "url", nil)
	testsupport.WriteSidecar(t, fromURL, map[string]any{"item_id": "UnknownID", "url": "https://shop.booth.pm/items/777", "title": "From URL"})
	item, err = catalog.ItemFromSidecar(fromURL)
	if err != nil || item.ID != "777" {
		t.Fatalf("url fallback: got %q, %v", item.ID, err)
	}

	fromFolder := testsupport.NewAssetFolder(t, dir, "555_Hat", nil)
	testsupport.WriteSidecar(t, fromFolder, map[string]any{"title": "Hat"})
	item, err = catalog.ItemFromSidecar(fromFolder)
	if err != nil || item.ID != "555" {
		t.Fatalf("folder fallback: got %q, %v", item.ID, err)
	}
}

func TestItemFromSidecarErrors(t *testing.T) {
	dir := t.TempDir()

	empty := testsupport.NewAssetFolder(t, dir, "empty", nil)
	if _, err := catalog.ItemFromSidecar(empty); !errors.Is(err, catalog.ErrInvalidSidecar) {
		t.Fatalf("missing sidecar: expected ErrInvalidSidecar, got %v", err)
	}

	broken := testsupport.NewAssetFolder(t, dir, "broken", map[string]string{"metadata.json": "{not json"})
	if _, err := catalog.ItemFromSidecar(broken); !errors.Is(err, catalog.ErrInvalidSidecar) {
		t.Fatalf("broken sidecar: expected ErrInvalidSidecar, got %v", err)
	}

	untitled := testsupport.NewAssetFolder(t, dir, "9_untitled", nil)
	testsupport.WriteSidecar(t, untitled, map[string]any{"item_id": "9"})
	if _, err := catalog.ItemFromSidecar(untitled); !errors.Is(err, catalog.ErrInvalidSidecar) {
		t.Fatalf("untitled sidecar: expected ErrInvalidSidecar, got %v", err)
	}

	for _, id := range []string{"x/../../../escaped", "..", "ABC-1"} {
		folder := testsupport.NewAssetFolder(t, t.TempDir(), "asset", nil)
		testsupport.WriteSidecar(t, folder, map[string]any{"item_id": id, "title": "Bad ID"})
		if _, err := catalog.ItemFromSidecar(folder); !errors.Is(err, catalog.ErrInvalidSidecar) {
			t.Fatalf("item_id %q: expected ErrInvalidSidecar, got %v", id, err)
		}
	}

	file := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.ItemFromSidecar(file); !errors.Is(err, catalog.ErrInvalidSidecar) {
		t.Fatalf("file path: expected ErrInvalidSidecar, got %v", err)
	}
}

func TestItemIDFromURL(t *testing.T) {
	cases := map[string]string{
		"https://booth.pm/items/123":             "123",
		"https://booth.pm/en/items/456?x=1":      "456",
		"https://creator.booth.pm/items/789/abc": "789",
		"https://example.com/":                   "",
	}
	for url, want := range cases {
		if got := catalog.ItemIDFromURL(url); got != want {
			t.Errorf("ItemIDFromURL(%q) = %q, want %q", url, got, want)
		}
	}
}
