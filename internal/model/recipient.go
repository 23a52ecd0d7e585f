package model

import "time"

// Recipient represents someone receiving donated items. Read-mostly; the
// ledger only references recipients by id.
type Recipient struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Kind             string     `json:"kind"`
	Gender           string     `json:"gender,omitempty"`
	Address          string     `json:"address,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	EmergencyContact string     `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// Recipient kinds. The kind picks the allocation policy applied to
// assignments for this recipient.
const (
	RecipientIndividual   = "individual"
	RecipientOrganisation = "organisation"
)

// ValidRecipientKind reports whether kind is a known recipient kind.
func ValidRecipientKind(kind string) bool {
	return kind == RecipientIndividual || kind == RecipientOrganisation
}
