package catalog

import (
	"database/sql"
	"errors"
	"time"
)

const itemColumns = "item_id, title, description, url, folder_path, creator, creator_url, package_id, is_packaged, package_version, last_packaged, created_at, updated_at"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id              string
		title           string
		description     sql.NullString
		url             sql.NullString
		folder          string
		creator         sql.NullString
		creatorURL      sql.NullString
		packageID       sql.NullString
		isPackaged      sql.NullInt64
		packageVersion  sql.NullString
		lastPackagedRaw sql.NullString
		createdRaw      sql.NullString
		updatedRaw      sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&title,
		&description,
		&url,
		&folder,
		&creator,
		&creatorURL,
		&packageID,
		&isPackaged,
		&packageVersion,
		&lastPackagedRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:             id,
		Title:          title,
		Description:    description.String,
		SourceURL:      url.String,
		AssetFolder:    folder,
		Creator:        creator.String,
		CreatorURL:     creatorURL.String,
		PackageID:      packageID.String,
		PackageVersion: packageVersion.String,
		Packaged:       isPackaged.Valid && isPackaged.Int64 != 0,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	if lastPackagedRaw.Valid {
		if packaged, err := parseTimeString(lastPackagedRaw.String); err == nil {
			item.LastPackaged = &packaged
		}
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
