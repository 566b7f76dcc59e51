package vpm_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"boothvpm/internal/vpm"
)

func TestProtocolURL(t *testing.T) {
	repo := vpm.Repository{Root: filepath.Join(t.TempDir(), "My Repo")}
	if _, err := vpm.ProtocolURL(repo); !errors.Is(err, vpm.ErrIndexMissing) {
		t.Fatalf("expected ErrIndexMissing before the index exists, got %v", err)
	}
	if _, err := vpm.RebuildIndex(repo, nil); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	link, err := vpm.ProtocolURL(repo)
	if err != nil {
		t.Fatalf("ProtocolURL: %v", err)
	}
	if !strings.HasPrefix(link, "vcc://vpm/addRepo?url=file:///") {
		t.Fatalf("unexpected protocol url %q", link)
	}
	if !strings.HasSuffix(link, "/My%20Repo/index.json") {
		t.Fatalf("expected percent-encoded path, got %q", link)
	}
	if strings.Contains(link, "file:////") {
		t.Fatalf("file url has an extra slash: %q", link)
	}
}

func TestInspectStates(t *testing.T) {
	repo := newRepo(t)
	if got := vpm.Inspect(repo); got.Overall != vpm.StatusFailed || got.RepositoryExists {
		t.Fatalf("missing repository: %+v", got)
	}

	if err := os.MkdirAll(repo.Root, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := vpm.Inspect(repo); got.Overall != vpm.StatusFailed || !got.RepositoryExists || got.IndexValid {
		t.Fatalf("repository without index: %+v", got)
	}

	if _, err := vpm.RebuildIndex(repo, nil); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	if got := vpm.Inspect(repo); got.Overall != vpm.StatusEmpty || !got.IndexValid || got.PackagesFound != 0 {
		t.Fatalf("empty repository: %+v", got)
	}

	writeManifest(t, repo, "com.a.one.1", "com.a.one.1", "1.0.0")
	if _, err := vpm.RebuildIndex(repo, nil); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	got := vpm.Inspect(repo)
	if got.Overall != vpm.StatusReady || got.PackagesFound != 1 || !got.ProtocolWorks || got.ProtocolURL == "" {
		t.Fatalf("ready repository: %+v", got)
	}
}

func TestListPackagesOrdersVersions(t *testing.T) {
	repo := newRepo(t)
	writeManifest(t, repo, "b-10", "com.b.pkg.1", "1.10.0")
	writeManifest(t, repo, "b-2", "com.b.pkg.1", "1.2.0")
	writeManifest(t, repo, "a-1", "com.a.pkg.1", "1.0.0")
	if _, err := vpm.RebuildIndex(repo, nil); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}

	summaries, err := vpm.ListPackages(repo)
	if err != nil {
		t.Fatalf("ListPackages: %v", err)
	}
	if len(summaries) != 2 || summaries[0].Name != "com.a.pkg.1" {
		t.Fatalf("expected packages ordered by name, got %+v", summaries)
	}
	b := summaries[1]
	if !reflect.DeepEqual(b.Versions, []string{"1.2.0", "1.10.0"}) || b.LatestVersion != "1.10.0" {
		t.Fatalf("unexpected version ordering %+v", b)
	}
	if b.Author != "Tester" {
		t.Fatalf("expected author from latest manifest, got %q", b.Author)
	}
}

func TestSortVersions(t *testing.T) {
	versions := []string{"2.0.0", "garbage", "1.0.0", "1.0.0-beta", "v1.5.0"}
	vpm.SortVersions(versions)
	want := []string{"garbage", "1.0.0-beta", "1.0.0", "v1.5.0", "2.0.0"}
	if !reflect.DeepEqual(versions, want) {
		t.Fatalf("SortVersions = %v, want %v", versions, want)
	}
}
