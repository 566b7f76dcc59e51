package vpm

import (
	"path/filepath"
	"strings"
)

// On-disk names inside a repository root and a package directory.
const (
	PackagesDirName      = "Packages"
	IndexFileName        = "index.json"
	ManifestFileName     = "package.json"
	ReadmeFileName       = "README.md"
	RuntimeDirName       = "Runtime"
	DocumentationDirName = "Documentation"
	ImagesDirName        = "images"
	// MetadataSidecarName is the scraper's per-item metadata file; it never
	// ships inside a package.
	MetadataSidecarName = "metadata.json"
)

// Defaults for the repository metadata written into index.json.
const (
	DefaultRepositoryName   = "Booth Assets Collection"
	DefaultRepositoryID     = "com.boothassetsmanager.repository"
	DefaultRepositoryAuthor = "booth-assets-manager@example.com"
)

// Repository identifies a repository root and the metadata published in its
// index. It is passed by value into every engine call.
type Repository struct {
	Root   string
	Name   string
	ID     string
	Author string
}

// WithDefaults fills empty metadata fields with the package defaults.
func (r Repository) WithDefaults() Repository {
	if strings.TrimSpace(r.Name) == "" {
		r.Name = DefaultRepositoryName
	}
	if strings.TrimSpace(r.ID) == "" {
		r.ID = DefaultRepositoryID
	}
	if strings.TrimSpace(r.Author) == "" {
		r.Author = DefaultRepositoryAuthor
	}
	return r
}

// PackagesDir returns <root>/Packages.
func (r Repository) PackagesDir() string {
	return filepath.Join(r.Root, PackagesDirName)
}

// IndexPath returns <root>/index.json.
func (r Repository) IndexPath() string {
	return filepath.Join(r.Root, IndexFileName)
}

// PackageDir returns the directory a package identifier materializes into.
func (r Repository) PackageDir(identifier string) string {
	return filepath.Join(r.PackagesDir(), identifier)
}

// fileURL renders an absolute path as a file:/// URL with forward slashes,
// which is the form the VCC accepts on every platform.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	slashed := filepath.ToSlash(abs)
	return "file:///" + strings.TrimLeft(slashed, "/")
}
