package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/razdelilnica/internal/model"
)

// CreateDonation creates a new donation drive.
func CreateDonation(ctx context.Context, db *sql.DB, name, driveType string) (*model.Donation, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO donations (name, type) VALUES (?, ?)`,
		name, driveType,
	)
	if err != nil {
		return nil, fmt.Errorf("creating donation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting donation id: %w", err)
	}

	return GetDonation(ctx, db, id)
}

// GetDonation returns a donation drive by ID.
func GetDonation(ctx context.Context, db *sql.DB, id int64) (*model.Donation, error) {
	d := &model.Donation{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, type, created_at FROM donations WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.Type, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting donation: %w", err)
	}
	return d, nil
}

// ListDonations returns all donation drives.
func ListDonations(ctx context.Context, db *sql.DB) ([]model.Donation, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, type, created_at FROM donations ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing donations: %w", err)
	}
	defer rows.Close()

	var donations []model.Donation
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(&d.ID, &d.Name, &d.Type, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning donation: %w", err)
		}
		donations = append(donations, d)
	}
	return donations, rows.Err()
}
