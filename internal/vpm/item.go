package vpm

import (
	"context"
	"strings"
)

// Item describes an imported asset folder. The persistence layer owns it; the
// engine only reads it.
type Item struct {
	ID          string
	Title       string
	Description string
	SourceURL   string
	// AssetFolder is the absolute path of the item's downloaded assets.
	AssetFolder string
	Creator     string
	CreatorURL  string

	// Package state as last recorded through a Recorder.
	PackageID      string
	PackageVersion string
	Packaged       bool
}

// IsPackaged reports whether the item carries a recorded package identity.
func (i Item) IsPackaged() bool {
	return i.Packaged && strings.TrimSpace(i.PackageID) != ""
}

// Recorder persists package identity against an item. Clearing a package is
// recorded with empty packageID and version and packaged=false.
type Recorder interface {
	RecordPackage(ctx context.Context, itemID, packageID, version string, packaged bool) error
}

// RecorderFunc adapts a plain function to Recorder.
type RecorderFunc func(ctx context.Context, itemID, packageID, version string, packaged bool) error

// RecordPackage calls f.
func (f RecorderFunc) RecordPackage(ctx context.Context, itemID, packageID, version string, packaged bool) error {
	return f(ctx, itemID, packageID, version, packaged)
}
