package catalog

import (
	"time"

	"boothvpm/internal/vpm"
)

// Item is one imported Booth asset folder and its recorded package state.
type Item struct {
	ID          string
	Title       string
	Description string
	SourceURL   string
	AssetFolder string
	Creator     string
	CreatorURL  string

	PackageID      string
	PackageVersion string
	Packaged       bool
	LastPackaged   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToVPM converts the catalog row into the engine's read-only item view.
func (i Item) ToVPM() vpm.Item {
	return vpm.Item{
		ID:             i.ID,
		Title:          i.Title,
		Description:    i.Description,
		SourceURL:      i.SourceURL,
		AssetFolder:    i.AssetFolder,
		Creator:        i.Creator,
		CreatorURL:     i.CreatorURL,
		PackageID:      i.PackageID,
		PackageVersion: i.PackageVersion,
		Packaged:       i.Packaged,
	}
}

// ToVPMItems converts a slice of catalog rows.
func ToVPMItems(items []*Item) []vpm.Item {
	out := make([]vpm.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, item.ToVPM())
	}
	return out
}

// Stats summarizes catalog contents.
type Stats struct {
	Items    int
	Packaged int
}
