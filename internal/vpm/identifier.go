package vpm

import (
	"path/filepath"
	"regexp"
	"strings"

	"boothvpm/internal/textutil"
)

const (
	defaultCreatorSegment = "booth"
	defaultTitleSegment   = "item"
)

// identifierPattern is the shape of every identifier the engine creates or
// deletes: dot-separated lowercase segments, no empty segment, starting with a
// letter.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z0-9]+)*$`)

// ValidIdentifier reports whether identifier is safe to use as a package
// directory name under Packages/.
func ValidIdentifier(identifier string) bool {
	return identifierPattern.MatchString(identifier) && filepath.Base(identifier) == identifier
}

// DeriveIdentifier builds the package identifier com.<creator>.<title>.<itemID>.
// Creator and title are sanitized independently; text that sanitizes to
// nothing falls back to "booth" and "item". The item ID keeps only its ASCII
// letters and digits, lowercased. An item ID with none of those yields an
// identifier that fails ValidIdentifier. The result depends only on the
// inputs, so re-deriving for the same item always yields the same directory.
func DeriveIdentifier(creator, title, itemID string) string {
	creatorSegment := textutil.SanitizeIDSegment(creator)
	if creatorSegment == "" {
		creatorSegment = defaultCreatorSegment
	}
	titleSegment := textutil.SanitizeIDSegment(title)
	if titleSegment == "" {
		titleSegment = defaultTitleSegment
	}
	return strings.Join([]string{"com", creatorSegment, titleSegment, textutil.SanitizeIDToken(itemID)}, ".")
}

// IdentifierFor derives the identifier for an item.
func IdentifierFor(item Item) string {
	return DeriveIdentifier(item.Creator, item.Title, item.ID)
}
