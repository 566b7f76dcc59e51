package vpm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"boothvpm/internal/fileutil"
)

// MaterializeStats reports what a materialize run copied.
type MaterializeStats struct {
	RuntimeFiles int
	Images       int
}

// Materialize lays out the package for item under identifier inside repo and
// returns the package directory. Existing directories are reused and every
// generated file is rewritten, so running it again over a half-finished
// package converges on the same result. Files copied before an error are left
// in place.
func Materialize(repo Repository, item Item, identifier string) (string, MaterializeStats, error) {
	var stats MaterializeStats
	if !ValidIdentifier(identifier) {
		return "", stats, wrap(ErrInvalidItem, "materialize", fmt.Sprintf("invalid package identifier %q", identifier), nil)
	}
	source := strings.TrimSpace(item.AssetFolder)
	if source == "" {
		return "", stats, wrap(ErrInvalidItem, "materialize", fmt.Sprintf("item %s has no asset folder", item.ID), nil)
	}
	info, err := os.Stat(source)
	if err != nil {
		return "", stats, wrap(ErrPackageCreation, "inspect asset folder", source, err)
	}
	if !info.IsDir() {
		return "", stats, wrap(ErrPackageCreation, "inspect asset folder", source+" is not a directory", nil)
	}

	packageDir := repo.PackageDir(identifier)
	runtimeDir := filepath.Join(packageDir, RuntimeDirName)
	docsDir := filepath.Join(packageDir, DocumentationDirName)
	for _, dir := range []string{runtimeDir, docsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", stats, wrap(ErrPackageCreation, "create package layout", dir, err)
		}
	}

	copied, err := fileutil.CopyTree(source, runtimeDir, IncludeInRuntime)
	stats.RuntimeFiles = copied
	if err != nil {
		return "", stats, wrap(ErrPackageCreation, "copy runtime assets", source, err)
	}

	images, err := fileutil.CopyFlat(filepath.Join(source, ImagesDirName), filepath.Join(docsDir, ImagesDirName))
	stats.Images = images
	if err != nil {
		return "", stats, wrap(ErrPackageCreation, "copy preview images", source, err)
	}

	if err := os.WriteFile(filepath.Join(packageDir, ReadmeFileName), []byte(RenderReadme(item)), 0o644); err != nil {
		return "", stats, wrap(ErrPackageCreation, "write readme", packageDir, err)
	}

	manifest := BuildManifest(item, identifier, PackageVersion)
	data, err := marshalDocument(manifest)
	if err != nil {
		return "", stats, wrap(ErrPackageCreation, "encode manifest", identifier, err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(packageDir, ManifestFileName), data, 0o644); err != nil {
		return "", stats, wrap(ErrPackageCreation, "write manifest", packageDir, err)
	}
	return packageDir, stats, nil
}

// RenderReadme produces the README.md written at the package root.
func RenderReadme(item Item) string {
	title := item.Title
	if strings.TrimSpace(title) == "" {
		title = defaultDisplayName
	}
	description := item.Description
	if description == "" {
		description = "No description available."
	}
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(description)
	b.WriteString("\n\nSource: ")
	b.WriteString(item.SourceURL)
	b.WriteString("\n")
	return b.String()
}
