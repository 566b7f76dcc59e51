// Package config loads, normalizes, and validates boothvpm configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and applies BOOTHVPM_* environment overrides. The Config type
// centralizes the repository location and identity, the data directory that
// holds the catalog and logs, and logging preferences.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
