// Package policy defines the allocation cap rules that limit how many units
// of an item a single assignment may grant, independent of current stock.
package policy

import "github.com/erazemk/razdelilnica/internal/model"

// AllocationPolicy returns the maximum quantity one assignment operation may
// grant for a given item and recipient. Policies perform no I/O; they are
// pure functions of their inputs.
type AllocationPolicy interface {
	MaxPerAssignment(itemID, recipientID int64) int
}

// Per-assignment caps.
const (
	IndividualCap   = 5
	OrganisationCap = 20
)

// Individual caps assignments to individual recipients.
type Individual struct{}

func (Individual) MaxPerAssignment(itemID, recipientID int64) int {
	return IndividualCap
}

// Organisation caps assignments to organisation recipients.
type Organisation struct{}

func (Organisation) MaxPerAssignment(itemID, recipientID int64) int {
	return OrganisationCap
}

// Selector maps a recipient kind to the policy applied to its assignments.
type Selector func(kind string) AllocationPolicy

// ForKind is the default selector. Unknown kinds fall back to the individual
// policy, the stricter of the two.
func ForKind(kind string) AllocationPolicy {
	if kind == model.RecipientOrganisation {
		return Organisation{}
	}
	return Individual{}
}
