package vpm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// PackageVersion is written by every (re)packaging run.
	PackageVersion = "1.0.0"
	// UnityVersion is the minimum editor version declared by generated manifests.
	UnityVersion = "2019.4"
	// MaxDescriptionLength caps manifest descriptions, counted in runes.
	MaxDescriptionLength = 500

	defaultDisplayName = "Booth Item"
	defaultAuthorName  = "Booth Creator"
)

// Author identifies the creator of a package.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Manifest is the package.json document of a package version.
type Manifest struct {
	Name            string            `json:"name"`
	DisplayName     string            `json:"displayName"`
	Version         string            `json:"version"`
	Unity           string            `json:"unity"`
	Description     string            `json:"description"`
	Author          Author            `json:"author"`
	VPMDependencies map[string]string `json:"vpmDependencies"`
	URL             string            `json:"url"`
	LegacyFolders   map[string]string `json:"legacyFolders"`
	LegacyFiles     map[string]string `json:"legacyFiles"`

	// raw holds the document a manifest was decoded from. Encoding a decoded
	// manifest reproduces it, including fields this struct does not declare.
	raw json.RawMessage
}

// manifestFields has Manifest's layout without its JSON methods.
type manifestFields Manifest

// MarshalJSON emits the original document for manifests read from disk and
// the declared fields for manifests built in memory.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if len(m.raw) > 0 {
		return m.raw, nil
	}
	return json.Marshal(manifestFields(m))
}

// UnmarshalJSON decodes the declared fields and keeps the whole document.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields manifestFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*m = Manifest(fields)
	m.raw = append(json.RawMessage(nil), data...)
	return nil
}

// BuildManifest constructs the manifest for item under identifier.
func BuildManifest(item Item, identifier, version string) Manifest {
	if strings.TrimSpace(version) == "" {
		version = PackageVersion
	}
	displayName := item.Title
	if strings.TrimSpace(displayName) == "" {
		displayName = defaultDisplayName
	}
	authorName := item.Creator
	if strings.TrimSpace(authorName) == "" {
		authorName = defaultAuthorName
	}
	// Surrounding whitespace is trimmed before the cut so it never uses up the
	// description budget.
	description := truncateRunes(strings.TrimSpace(item.Description), MaxDescriptionLength)
	return Manifest{
		Name:            identifier,
		DisplayName:     displayName,
		Version:         version,
		Unity:           UnityVersion,
		Description:     description,
		Author:          Author{Name: authorName, URL: item.CreatorURL},
		VPMDependencies: map[string]string{},
		URL:             fileURL(item.AssetFolder),
		LegacyFolders:   map[string]string{},
		LegacyFiles:     map[string]string{},
	}
}

// truncateRunes cuts s to at most limit runes without regard to word
// boundaries.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}

// ReadManifest parses a package.json file. Missing versions default to
// PackageVersion; a manifest without a name is rejected. The returned value
// encodes back to the file's content unchanged.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if strings.TrimSpace(manifest.Name) == "" {
		return Manifest{}, fmt.Errorf("manifest %s has no name", path)
	}
	if strings.TrimSpace(manifest.Version) == "" {
		manifest.Version = PackageVersion
	}
	return manifest, nil
}

// marshalDocument renders v as two-space indented JSON with a trailing newline
// and without HTML escaping, matching what package managers write.
func marshalDocument(v any) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
