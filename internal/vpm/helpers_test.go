package vpm_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"boothvpm/internal/testsupport"
	"boothvpm/internal/vpm"
)

func newRepo(t *testing.T) vpm.Repository {
	t.Helper()
	return vpm.Repository{Root: filepath.Join(t.TempDir(), "repository")}
}

// writeManifest places a package.json for name@version under Packages/<dir>.
func writeManifest(t *testing.T, repo vpm.Repository, dir, name, version string) {
	t.Helper()
	manifest := map[string]any{
		"name":        name,
		"displayName": name,
		"version":     version,
		"unity":       vpm.UnityVersion,
		"author":      map[string]string{"name": "Tester", "url": ""},
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	testsupport.WriteText(t, filepath.Join(repo.PackageDir(dir), vpm.ManifestFileName), string(data))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
