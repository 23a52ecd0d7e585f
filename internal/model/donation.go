package model

import "time"

// Donation represents a named donation drive. Drives categorize
// distributions; stock lives on items, not on drives.
type Donation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Donation drive types.
const (
	DonationEmergencyFoodAid          = "emergency_food_aid"
	DonationCommunityCentreCollection = "community_centre_collection"
)

// DonationTypeNames maps drive type tags to display names.
var DonationTypeNames = map[string]string{
	DonationEmergencyFoodAid:          "Emergency Food Aid",
	DonationCommunityCentreCollection: "Community Centre Collection",
}

// ValidDonationType reports whether tag is a known drive type.
func ValidDonationType(tag string) bool {
	_, ok := DonationTypeNames[tag]
	return ok
}
