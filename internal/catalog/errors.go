package catalog

import "errors"

var (
	// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
	// ErrItemNotFound is returned when an operation targets an item ID the catalog does not hold.
	ErrItemNotFound = errors.New("item not found")
	// ErrInvalidItem is returned when an item lacks its ID, title, or asset folder.
	ErrInvalidItem = errors.New("invalid item")
	// ErrInvalidSidecar is returned when metadata.json cannot be read or lacks required fields.
	ErrInvalidSidecar = errors.New("invalid metadata sidecar")
)
