package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Upsert registers an item or refreshes its storefront metadata and asset
// folder. Recorded package state is left untouched on refresh.
func (s *Store) Upsert(ctx context.Context, item Item) (*Item, error) {
	item.ID = strings.TrimSpace(item.ID)
	item.Title = strings.TrimSpace(item.Title)
	item.AssetFolder = strings.TrimSpace(item.AssetFolder)
	switch {
	case item.ID == "":
		return nil, fmt.Errorf("%w: item id is required", ErrInvalidItem)
	case item.Title == "":
		return nil, fmt.Errorf("%w: item %s has no title", ErrInvalidItem, item.ID)
	case item.AssetFolder == "":
		return nil, fmt.Errorf("%w: item %s has no asset folder", ErrInvalidItem, item.ID)
	}

	timestamp := s.timestamp()
	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO items (
            item_id, title, description, url, folder_path, creator, creator_url,
            is_packaged, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
        ON CONFLICT(item_id) DO UPDATE SET
            title = excluded.title,
            description = excluded.description,
            url = excluded.url,
            folder_path = excluded.folder_path,
            creator = excluded.creator,
            creator_url = excluded.creator_url,
            updated_at = excluded.updated_at`,
		item.ID,
		item.Title,
		nullableString(item.Description),
		nullableString(item.SourceURL),
		item.AssetFolder,
		nullableString(item.Creator),
		nullableString(item.CreatorURL),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert item %s: %w", item.ID, err)
	}
	return s.Get(ctx, item.ID)
}

// Get fetches an item by Booth item ID. A missing item returns (nil, nil).
func (s *Store) Get(ctx context.Context, id string) (*Item, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+itemColumns+` FROM items WHERE item_id = ?`, strings.TrimSpace(id))
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns every item ordered by item ID.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	return s.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
}

// ListPackaged returns the items whose package is currently recorded as present.
func (s *Store) ListPackaged(ctx context.Context) ([]*Item, error) {
	return s.query(ctx, `SELECT `+itemColumns+` FROM items WHERE is_packaged = 1 ORDER BY item_id`)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Remove deletes an item row. It reports whether a row was removed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM items WHERE item_id = ?`, strings.TrimSpace(id))
	if err != nil {
		return false, fmt.Errorf("remove item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// RecordPackage stamps package identity onto an item. Recording
// packaged=false clears the identity and version; last_packaged keeps the
// time of the most recent successful packaging.
func (s *Store) RecordPackage(ctx context.Context, itemID, packageID, version string, packaged bool) error {
	timestamp := s.timestamp()
	if !packaged {
		packageID, version = "", ""
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE items
         SET package_id = ?, package_version = ?, is_packaged = ?,
             last_packaged = CASE WHEN ? = 1 THEN ? ELSE last_packaged END,
             updated_at = ?
         WHERE item_id = ?`,
		nullableString(packageID),
		nullableString(version),
		boolToInt(packaged),
		boolToInt(packaged),
		timestamp,
		timestamp,
		strings.TrimSpace(itemID),
	)
	if err != nil {
		return fmt.Errorf("record package for %s: %w", itemID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record package for %s: %w", itemID, ErrItemNotFound)
	}
	return nil
}

// Stats counts catalog rows.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1), COALESCE(SUM(is_packaged), 0) FROM items`)
	if err := row.Scan(&stats.Items, &stats.Packaged); err != nil {
		return Stats{}, fmt.Errorf("catalog stats: %w", err)
	}
	return stats, nil
}
