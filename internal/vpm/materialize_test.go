package vpm_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"boothvpm/internal/testsupport"
	"boothvpm/internal/vpm"
)

func TestMaterializeLayout(t *testing.T) {
	repo := newRepo(t)
	folder := testsupport.NewAssetFolder(t, t.TempDir(), "asset", map[string]string{
		"Prop.unitypackage":        "unity",
		"Models/Prop.fbx":          "fbx",
		"Models/images/ref.png":    "nested preview",
		"Models/metadata.json":     "{}",
		"metadata.json":            "{}",
		"images/cover.jpg":         "cover",
		"images/extra/ignored.png": "deep",
	})
	item := vpm.Item{ID: "100", Title: "Cool Prop", Description: "desc", SourceURL: "https://booth.pm/items/100", AssetFolder: folder}

	packageDir, stats, err := vpm.Materialize(repo, item, "com.booth.cool.prop.100")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if packageDir != repo.PackageDir("com.booth.cool.prop.100") {
		t.Fatalf("package dir = %q", packageDir)
	}
	if stats.RuntimeFiles != 2 || stats.Images != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	runtime := filepath.Join(packageDir, vpm.RuntimeDirName)
	for _, rel := range []string{"Prop.unitypackage", "Models/Prop.fbx"} {
		if !exists(filepath.Join(runtime, filepath.FromSlash(rel))) {
			t.Fatalf("expected %s in Runtime", rel)
		}
	}
	for _, rel := range []string{"images", "Models/images", "metadata.json", "Models/metadata.json"} {
		if exists(filepath.Join(runtime, filepath.FromSlash(rel))) {
			t.Fatalf("%s must not be copied into Runtime", rel)
		}
	}
	docsImages := filepath.Join(packageDir, vpm.DocumentationDirName, vpm.ImagesDirName)
	if !exists(filepath.Join(docsImages, "cover.jpg")) {
		t.Fatal("expected cover.jpg in Documentation/images")
	}
	if exists(filepath.Join(docsImages, "extra")) {
		t.Fatal("nested image directories must not be copied")
	}

	readme := readFile(t, filepath.Join(packageDir, vpm.ReadmeFileName))
	if readme != "# Cool Prop\n\ndesc\n\nSource: https://booth.pm/items/100\n" {
		t.Fatalf("unexpected readme %q", readme)
	}
	manifest, err := vpm.ReadManifest(filepath.Join(packageDir, vpm.ManifestFileName))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if manifest.Name != "com.booth.cool.prop.100" || manifest.Version != vpm.PackageVersion {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
}

func TestMaterializeOverwritesGeneratedFiles(t *testing.T) {
	repo := newRepo(t)
	folder := testsupport.NewAssetFolder(t, t.TempDir(), "asset", map[string]string{"a.txt": "a"})
	item := vpm.Item{ID: "1", Title: "First", AssetFolder: folder}

	if _, _, err := vpm.Materialize(repo, item, "com.booth.first.1"); err != nil {
		t.Fatalf("first Materialize: %v", err)
	}
	item.Title = "Second"
	packageDir, _, err := vpm.Materialize(repo, item, "com.booth.first.1")
	if err != nil {
		t.Fatalf("second Materialize: %v", err)
	}
	readme := readFile(t, filepath.Join(packageDir, vpm.ReadmeFileName))
	if !strings.HasPrefix(readme, "# Second\n") {
		t.Fatalf("readme not rewritten: %q", readme)
	}
	if !strings.Contains(readme, "No description available.") {
		t.Fatalf("expected placeholder description, got %q", readme)
	}
}

func TestMaterializeMissingAssetFolder(t *testing.T) {
	repo := newRepo(t)
	item := vpm.Item{ID: "1", Title: "Gone", AssetFolder: filepath.Join(t.TempDir(), "missing")}

	_, _, err := vpm.Materialize(repo, item, "com.booth.gone.1")
	if !errors.Is(err, vpm.ErrPackageCreation) {
		t.Fatalf("expected ErrPackageCreation, got %v", err)
	}
	if exists(repo.PackageDir("com.booth.gone.1")) {
		t.Fatal("no package directory should be created for a missing asset folder")
	}
}

func TestMaterializeRejectsEmptyIdentifier(t *testing.T) {
	repo := newRepo(t)
	_, _, err := vpm.Materialize(repo, vpm.Item{ID: "1", AssetFolder: t.TempDir()}, " ")
	if !errors.Is(err, vpm.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}
