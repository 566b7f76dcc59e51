package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"boothvpm/internal/vpm"
)

var (
	itemURLPattern    = regexp.MustCompile(`/(?:en/)?items/(\d+)`)
	folderPrefixRegex = regexp.MustCompile(`^(\d+)_`)
	itemIDPattern     = regexp.MustCompile(`^[0-9A-Za-z]+$`)
)

type sidecar struct {
	URL         string     `json:"url"`
	ItemID      flexibleID `json:"item_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Creator     string     `json:"creator"`
	CreatorURL  string     `json:"creator_url"`
}

// flexibleID accepts the item ID as either a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item_id: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}

// ItemFromSidecar builds an item from the metadata.json written next to a
// downloaded asset folder. The item ID falls back to the storefront URL and
// then to a leading "<id>_" in the folder name.
func ItemFromSidecar(folder string) (Item, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return Item{}, fmt.Errorf("resolve folder %q: %w", folder, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %s: %w", ErrInvalidSidecar, abs, err)
	}
	if !info.IsDir() {
		return Item{}, fmt.Errorf("%w: %s is not a directory", ErrInvalidSidecar, abs)
	}

	path := filepath.Join(abs, vpm.MetadataSidecarName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Item{}, fmt.Errorf("%w: %s not found", ErrInvalidSidecar, path)
		}
		return Item{}, fmt.Errorf("read %s: %w", path, err)
	}
	var meta sidecar
	if err := json.Unmarshal(data, &meta); err != nil {
		return Item{}, fmt.Errorf("%w: %s: %w", ErrInvalidSidecar, path, err)
	}

	item := Item{
		ID:          strings.TrimSpace(string(meta.ItemID)),
		Title:       strings.TrimSpace(meta.Title),
		Description: strings.TrimSpace(meta.Description),
		SourceURL:   strings.TrimSpace(meta.URL),
		AssetFolder: abs,
		Creator:     strings.TrimSpace(meta.Creator),
		CreatorURL:  strings.TrimSpace(meta.CreatorURL),
	}
	if item.ID == "" || item.ID == "UnknownID" {
		item.ID = ItemIDFromURL(item.SourceURL)
	}
	if item.ID == "" {
		if match := folderPrefixRegex.FindStringSubmatch(filepath.Base(abs)); match != nil {
			item.ID = match[1]
		}
	}
	if item.ID == "" {
		return Item{}, fmt.Errorf("%w: %s has no item_id and no Booth item URL", ErrInvalidSidecar, path)
	}
	if !itemIDPattern.MatchString(item.ID) {
		return Item{}, fmt.Errorf("%w: %s: item_id %q must be letters and digits only", ErrInvalidSidecar, path, item.ID)
	}
	if item.Title == "" {
		return Item{}, fmt.Errorf("%w: %s has no title", ErrInvalidSidecar, path)
	}
	return item, nil
}

// ItemIDFromURL extracts the numeric item ID from a Booth storefront URL
// such as https://booth.pm/en/items/12345. It returns "" when none is present.
func ItemIDFromURL(raw string) string {
	match := itemURLPattern.FindStringSubmatch(raw)
	if match == nil {
		return ""
	}
	return match[1]
}
