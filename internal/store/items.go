package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/razdelilnica/internal/model"
)

// CreateItem creates a new catalog item with an initial stock quantity.
// Item names must be unique within a category.
func CreateItem(ctx context.Context, db *sql.DB, name, category string, stock int) (*model.Item, error) {
	categoryID, err := GetCategoryID(ctx, db, category)
	if err != nil {
		return nil, err
	}

	var exists int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE name = ? AND category_id = ?`,
		name, categoryID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking for duplicate item: %w", err)
	}
	if exists > 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrDuplicateItem, name, category)
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, category_id, stock) VALUES (?, ?, ?)`,
		name, categoryID, stock,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var photoMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT i.id, i.name, c.name, i.stock, i.photo_mime, i.created_at, i.updated_at
		 FROM items i JOIN categories c ON c.id = i.category_id
		 WHERE i.id = ?`, id,
	).Scan(&item.ID, &item.Name, &item.Category, &item.Stock, &photoMime, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.PhotoMime = photoMime.String
	return item, nil
}

// ListItems returns all items, optionally filtered by a name substring and by
// category.
func ListItems(ctx context.Context, db *sql.DB, nameLike, category string) ([]model.Item, error) {
	query := `SELECT i.id, i.name, c.name, i.stock, i.photo_mime, i.created_at, i.updated_at
	          FROM items i JOIN categories c ON c.id = i.category_id
	          WHERE 1=1`
	var args []any

	if nameLike != "" {
		query += ` AND i.name LIKE ?`
		args = append(args, "%"+nameLike+"%")
	}
	if category != "" {
		query += ` AND c.name = ?`
		args = append(args, category)
	}

	query += ` ORDER BY i.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		var photoMime sql.NullString
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Stock, &photoMime, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.PhotoMime = photoMime.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemStock sets an item's stock directly. This is an administrative
// override for corrections; it bypasses the allocation policy and must not be
// used to record distributions.
func SetItemStock(ctx context.Context, db *sql.DB, id int64, stock int) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		stock, id,
	)
	if err != nil {
		return fmt.Errorf("setting item stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking stock update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}

// DeleteItem removes an item from the catalog. Items referenced by any
// distribution cannot be deleted; zero their stock instead.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM distributions WHERE item_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking item distributions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d distribution(s) reference item %d", ErrItemInUse, count, id)
	}

	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking item deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}

// SetItemPhoto sets an item's photo data.
func SetItemPhoto(ctx context.Context, db *sql.DB, id int64, photo []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET photo = ?, photo_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		photo, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item photo: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking photo update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
	}
	return nil
}

// GetItemPhoto returns an item's photo data and MIME type.
func GetItemPhoto(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var photo []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT photo, photo_mime FROM items WHERE id = ?`, id,
	).Scan(&photo, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item photo: %w", err)
	}
	return photo, mime.String, nil
}

// GetCategoryID returns the id of a category by name (case-insensitive).
func GetCategoryID(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE LOWER(name) = LOWER(?)`, name,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("unknown category %q", name)
	}
	if err != nil {
		return 0, fmt.Errorf("looking up category: %w", err)
	}
	return id, nil
}
