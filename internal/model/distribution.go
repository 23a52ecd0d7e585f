package model

import "time"

// Distribution records a grant of a quantity of one item to one recipient
// under one donation drive. At most one active row exists per
// (item, recipient) pair; repeat assignment replaces the row.
type Distribution struct {
	ItemID        int64     `json:"item_id"`
	RecipientID   int64     `json:"recipient_id"`
	DonationID    int64     `json:"donation_id"`
	Quantity      int       `json:"quantity"`
	DistributedAt time.Time `json:"distributed_at"`

	// Joined fields (not always populated).
	ItemName      string `json:"item_name,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
	DonationName  string `json:"donation_name,omitempty"`
}
