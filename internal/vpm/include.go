package vpm

import (
	"path/filepath"
	"strings"
)

// IncludeInRuntime reports whether a path relative to an asset folder belongs
// in a package's Runtime tree. Anything inside a directory named "images" is
// excluded at every depth, as is the metadata sidecar file. The check is
// purely lexical and never touches the filesystem.
func IncludeInRuntime(rel string, isDir bool) bool {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(rel)), "/")
	dirs := parts
	if !isDir {
		dirs = parts[:len(parts)-1]
		if parts[len(parts)-1] == MetadataSidecarName {
			return false
		}
	}
	for _, dir := range dirs {
		if dir == ImagesDirName {
			return false
		}
	}
	return true
}
