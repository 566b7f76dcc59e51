// Package main hosts the boothvpm CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into catalog
// updates and repository operations: importing downloaded Booth asset
// folders, packaging them into VPM packages, rebuilding and validating the
// repository index, and handing the repository to the VRChat Creator
// Companion. It centralizes configuration resolution, structured logging
// setup, and the repository lock so subcommands can focus on output.
//
// Keep this package lean: new behavior belongs in internal/vpm or
// internal/catalog first, then gets surfaced here.
package main
