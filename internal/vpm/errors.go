package vpm

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidItem     = errors.New("invalid item")
	ErrPackageCreation = errors.New("package creation failed")
	ErrPackageRemoval  = errors.New("package removal failed")
	ErrNotPackaged     = errors.New("item is not packaged")
	ErrPersistence     = errors.New("persistence failed")
	ErrIndexMissing    = errors.New("repository index not found")
	ErrInvalidIndex    = errors.New("repository index is invalid")
	ErrIndexWrite      = errors.New("repository index write failed")
)

// wrap tags err with a marker sentinel so callers can classify failures with
// errors.Is while the message keeps the operation context.
func wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrPackageCreation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "vpm failure"
	}
	return strings.Join(parts, ": ")
}
