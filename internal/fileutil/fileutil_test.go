package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")

	content := []byte("hello world")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestCopyFileMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	if err := os.WriteFile(src, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFileMode(src, dst, 0o755); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	// Check executable bits are set (umask may clear some bits).
	if info.Mode().Perm()&0o111 == 0 {
		t.Fatalf("expected executable bits, got %o", info.Mode().Perm())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCopyTreeHonoursInclude(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	dst := filepath.Join(t.TempDir(), "dst")
	writeTree(t, src, map[string]string{
		"a.txt":         "a",
		"sub/b.txt":     "b",
		"skip/c.txt":    "c",
		"sub/skip.json": "d",
	})

	include := func(rel string, isDir bool) bool {
		if isDir {
			return filepath.Base(rel) != "skip"
		}
		return !strings.HasSuffix(rel, ".json")
	}
	copied, err := CopyTree(src, dst, include)
	if err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	if copied != 2 {
		t.Fatalf("expected 2 files copied, got %d", copied)
	}
	for _, rel := range []string{"a.txt", "sub/b.txt"} {
		if _, err := os.Stat(filepath.Join(dst, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("expected %s copied: %v", rel, err)
		}
	}
	for _, rel := range []string{"skip", "sub/skip.json"} {
		if _, err := os.Stat(filepath.Join(dst, filepath.FromSlash(rel))); !os.IsNotExist(err) {
			t.Fatalf("expected %s excluded, stat err=%v", rel, err)
		}
	}
}

func TestCopyTreeOverwritesExisting(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	dst := filepath.Join(t.TempDir(), "dst")
	writeTree(t, src, map[string]string{"a.txt": "new"})
	writeTree(t, dst, map[string]string{"a.txt": "old and longer"})

	if _, err := CopyTree(src, dst, nil); err != nil {
		t.Fatalf("CopyTree: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("expected overwrite, got %q", got)
	}
}

func TestCopyTreeRejectsFileSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "file")
	if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CopyTree(src, filepath.Join(dir, "dst"), nil); err == nil {
		t.Fatal("expected error when source is a file")
	}
}

func TestCopyFlatSkipsSubdirectories(t *testing.T) {
	src := filepath.Join(t.TempDir(), "images")
	dst := filepath.Join(t.TempDir(), "out")
	writeTree(t, src, map[string]string{
		"one.png":        "1",
		"nested/two.png": "2",
	})

	copied, err := CopyFlat(src, dst)
	if err != nil {
		t.Fatalf("CopyFlat: %v", err)
	}
	if copied != 1 {
		t.Fatalf("expected 1 file, got %d", copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "nested")); !os.IsNotExist(err) {
		t.Fatalf("expected nested dir to be ignored, err=%v", err)
	}
}

func TestCopyFlatMissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	copied, err := CopyFlat(filepath.Join(t.TempDir(), "missing"), dst)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if copied != 0 {
		t.Fatalf("expected nothing copied, got %d", copied)
	}
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("unexpected content %q", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files cleaned up, found %d entries", len(entries))
	}
}
