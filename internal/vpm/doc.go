// Package vpm turns item asset folders into VPM-style packages and maintains
// the repository index a package-manager client (the VRChat Creator
// Companion) reads.
//
// A repository is a directory holding Packages/<identifier>/ trees and a
// single index.json. Identifiers are derived deterministically from the
// creator, title, and item ID, so re-packaging an item always lands in the
// same directory. Materializing a package copies the item's assets into
// Runtime/, preview images into Documentation/images/, and rewrites the
// README.md and package.json manifest in full.
//
// The index is always rebuilt from the manifests on disk and replaced
// atomically; it is never patched. Directories without a readable manifest
// are skipped rather than failing the rebuild, which is what lets every
// operation here recover from an interrupted run by simply running again.
//
// Nothing in this package holds process-wide state. Callers pass a
// Repository value describing the root and index metadata, and a Recorder
// that persists package identity for an item. The engine performs no
// locking; serializing access to a repository root is the caller's job.
package vpm
