package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/razdelilnica/internal/model"
)

// CreateRecipient creates a new recipient.
func CreateRecipient(ctx context.Context, db *sql.DB, r model.Recipient) (*model.Recipient, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO recipients (name, kind, gender, address, phone, email, emergency_contact)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.Kind, r.Gender, r.Address, r.Phone, r.Email, r.EmergencyContact,
	)
	if err != nil {
		return nil, fmt.Errorf("creating recipient: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting recipient id: %w", err)
	}

	return GetRecipient(ctx, db, id)
}

// GetRecipient returns a recipient by ID.
func GetRecipient(ctx context.Context, db *sql.DB, id int64) (*model.Recipient, error) {
	r := &model.Recipient{}
	var gender, address, phone, email, emergency sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, kind, gender, address, phone, email, emergency_contact, created_at, deleted_at
		 FROM recipients WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Kind, &gender, &address, &phone, &email, &emergency, &r.CreatedAt, &r.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting recipient: %w", err)
	}
	r.Gender = gender.String
	r.Address = address.String
	r.Phone = phone.String
	r.Email = email.String
	r.EmergencyContact = emergency.String
	return r, nil
}

// ListRecipients returns all non-deleted recipients, optionally filtered by a
// name substring.
func ListRecipients(ctx context.Context, db *sql.DB, nameLike string) ([]model.Recipient, error) {
	query := `SELECT id, name, kind, gender, address, phone, email, emergency_contact, created_at, deleted_at
	          FROM recipients WHERE deleted_at IS NULL`
	var args []any

	if nameLike != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+nameLike+"%")
	}

	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recipients: %w", err)
	}
	defer rows.Close()

	var recipients []model.Recipient
	for rows.Next() {
		var r model.Recipient
		var gender, address, phone, email, emergency sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind, &gender, &address, &phone, &email, &emergency, &r.CreatedAt, &r.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning recipient: %w", err)
		}
		r.Gender = gender.String
		r.Address = address.String
		r.Phone = phone.String
		r.Email = email.String
		r.EmergencyContact = emergency.String
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

// UpdateRecipient updates a recipient's details.
func UpdateRecipient(ctx context.Context, db *sql.DB, id int64, r model.Recipient) error {
	result, err := db.ExecContext(ctx,
		`UPDATE recipients SET name = ?, kind = ?, gender = ?, address = ?, phone = ?, email = ?, emergency_contact = ?
		 WHERE id = ? AND deleted_at IS NULL`,
		r.Name, r.Kind, r.Gender, r.Address, r.Phone, r.Email, r.EmergencyContact, id,
	)
	if err != nil {
		return fmt.Errorf("updating recipient: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking recipient update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrRecipientNotFound, id)
	}
	return nil
}

// DeleteRecipient soft-deletes a recipient. Fails while any distribution
// still references the recipient.
func DeleteRecipient(ctx context.Context, db *sql.DB, id int64) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM distributions WHERE recipient_id = ?`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking recipient distributions: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %d distribution(s) still assigned", ErrRecipientInUse, count)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE recipients SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting recipient: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking recipient deletion: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrRecipientNotFound, id)
	}
	return nil
}
