package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/razdelilnica/internal/model"
	"github.com/erazemk/razdelilnica/internal/policy"
)

// Assign grants a quantity of an item to a recipient under a donation drive.
// All checks and both writes (ledger row + stock decrement) happen in a single
// transaction; a rejected assignment performs no mutation.
//
// Check order, first failure wins: quantity, recipient, item, donation,
// policy cap, stock.
//
// At most one distribution row exists per (item, recipient) pair. Assigning to
// a pair that already has a row replaces it: the prior quantity is returned to
// stock before the stock check, so re-assignment is exact and deterministic.
func Assign(ctx context.Context, db *sql.DB, policies policy.Selector, itemID, recipientID, donationID int64, quantity int) (*model.Distribution, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", errors.Join(ErrStoreUnavailable, err))
	}
	defer tx.Rollback()

	// Recipient must exist; its kind picks the allocation policy.
	var kind string
	err = tx.QueryRowContext(ctx,
		`SELECT kind FROM recipients WHERE id = ? AND deleted_at IS NULL`, recipientID,
	).Scan(&kind)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrRecipientNotFound, recipientID)
	}
	if err != nil {
		return nil, fmt.Errorf("checking recipient: %w", err)
	}

	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT stock FROM items WHERE id = ?`, itemID,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("checking item: %w", err)
	}

	var donationExists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM donations WHERE id = ?`, donationID,
	).Scan(&donationExists)
	if err != nil {
		return nil, fmt.Errorf("checking donation: %w", err)
	}
	if donationExists == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrDonationNotFound, donationID)
	}

	limit := policies(kind).MaxPerAssignment(itemID, recipientID)
	if quantity > limit {
		return nil, fmt.Errorf("%w: requested %d, cap %d", ErrPolicyCapExceeded, quantity, limit)
	}

	// A replaced assignment returns its prior quantity to stock first.
	var prior int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM distributions WHERE item_id = ? AND recipient_id = ?`,
		itemID, recipientID,
	).Scan(&prior)
	if err == sql.ErrNoRows {
		prior = 0
	} else if err != nil {
		return nil, fmt.Errorf("checking existing assignment: %w", err)
	}

	available := stock + prior
	if quantity > available {
		return nil, fmt.Errorf("%w: requested %d, available %d", ErrInsufficientStock, quantity, available)
	}

	// Compare-and-swap on the stock value read above. A concurrent writer that
	// slipped in between makes this a no-op, which we surface for retry instead
	// of double-decrementing.
	result, err := tx.ExecContext(ctx,
		`UPDATE items SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND stock = ?`,
		available-quantity, itemID, stock,
	)
	if err != nil {
		return nil, fmt.Errorf("updating stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking stock update: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: item %d", ErrConcurrentModification, itemID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO distributions (item_id, recipient_id, donation_id, quantity)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (item_id, recipient_id) DO UPDATE SET
		     donation_id = excluded.donation_id,
		     quantity = excluded.quantity,
		     distributed_at = CURRENT_TIMESTAMP`,
		itemID, recipientID, donationID, quantity,
	)
	if err != nil {
		return nil, fmt.Errorf("recording distribution: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing assignment: %w", errors.Join(ErrStoreUnavailable, err))
	}

	return GetDistribution(ctx, db, itemID, recipientID)
}

// Reverse removes a recipient's assignment for an item and restores the
// recorded quantity to stock. The restored amount comes from the stored row,
// never from the caller. Deletion and restore happen in one transaction.
func Reverse(ctx context.Context, db *sql.DB, itemID, recipientID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", errors.Join(ErrStoreUnavailable, err))
	}
	defer tx.Rollback()

	var quantity int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM distributions WHERE item_id = ? AND recipient_id = ?`,
		itemID, recipientID,
	).Scan(&quantity)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: item %d, recipient %d", ErrAssignmentNotFound, itemID, recipientID)
	}
	if err != nil {
		return fmt.Errorf("checking assignment: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM distributions WHERE item_id = ? AND recipient_id = ?`,
		itemID, recipientID,
	)
	if err != nil {
		return fmt.Errorf("deleting distribution: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE items SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		quantity, itemID,
	)
	if err != nil {
		return fmt.Errorf("restoring stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reversal: %w", errors.Join(ErrStoreUnavailable, err))
	}
	return nil
}

const distributionColumns = `d.item_id, d.recipient_id, d.donation_id, d.quantity, d.distributed_at,
	        i.name AS item_name, r.name AS recipient_name, dn.name AS donation_name
	 FROM distributions d
	 JOIN items i ON i.id = d.item_id
	 JOIN recipients r ON r.id = d.recipient_id
	 JOIN donations dn ON dn.id = d.donation_id`

// GetDistribution returns the distribution row for an (item, recipient) pair.
func GetDistribution(ctx context.Context, db *sql.DB, itemID, recipientID int64) (*model.Distribution, error) {
	d := &model.Distribution{}
	err := db.QueryRowContext(ctx,
		`SELECT `+distributionColumns+` WHERE d.item_id = ? AND d.recipient_id = ?`,
		itemID, recipientID,
	).Scan(&d.ItemID, &d.RecipientID, &d.DonationID, &d.Quantity, &d.DistributedAt,
		&d.ItemName, &d.RecipientName, &d.DonationName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting distribution: %w", err)
	}
	return d, nil
}

// ListRecipientDistributions returns the items distributed to a recipient,
// newest first, ties broken by item id.
func ListRecipientDistributions(ctx context.Context, db *sql.DB, recipientID int64) ([]model.Distribution, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+distributionColumns+`
		 WHERE d.recipient_id = ?
		 ORDER BY d.distributed_at DESC, d.item_id ASC`, recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipient distributions: %w", err)
	}
	defer rows.Close()

	return scanDistributions(rows)
}

// ListItemDistributions returns the recipients an item was distributed to,
// optionally filtered by donation drive, newest first, ties broken by
// recipient id.
func ListItemDistributions(ctx context.Context, db *sql.DB, itemID, donationID int64) ([]model.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` WHERE d.item_id = ?`
	args := []any{itemID}

	if donationID > 0 {
		query += ` AND d.donation_id = ?`
		args = append(args, donationID)
	}

	query += ` ORDER BY d.distributed_at DESC, d.recipient_id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing item distributions: %w", err)
	}
	defer rows.Close()

	return scanDistributions(rows)
}

// ListDistributions returns all distributions, optionally filtered by
// donation drive, newest first, ties broken by item id.
func ListDistributions(ctx context.Context, db *sql.DB, donationID int64) ([]model.Distribution, error) {
	query := `SELECT ` + distributionColumns + ` WHERE 1=1`
	var args []any

	if donationID > 0 {
		query += ` AND d.donation_id = ?`
		args = append(args, donationID)
	}

	query += ` ORDER BY d.distributed_at DESC, d.item_id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing distributions: %w", err)
	}
	defer rows.Close()

	return scanDistributions(rows)
}

func scanDistributions(rows *sql.Rows) ([]model.Distribution, error) {
	var distributions []model.Distribution
	for rows.Next() {
		var d model.Distribution
		if err := rows.Scan(&d.ItemID, &d.RecipientID, &d.DonationID, &d.Quantity, &d.DistributedAt,
			&d.ItemName, &d.RecipientName, &d.DonationName); err != nil {
			return nil, fmt.Errorf("scanning distribution: %w", err)
		}
		distributions = append(distributions, d)
	}
	return distributions, rows.Err()
}
