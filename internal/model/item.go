package model

import "time"

// Item represents a donated food item. Stock is the available, undistributed
// quantity and is only mutated through the distribution ledger or an explicit
// administrative override.
type Item struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Stock     int       `json:"stock"`
	PhotoMime string    `json:"photo_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item categories.
const (
	CategoryBeverage = "beverage"
	CategoryFruit    = "fruit"
)

// CategoryNames maps category tags to display names.
var CategoryNames = map[string]string{
	CategoryBeverage: "Beverage",
	CategoryFruit:    "Fruit",
}

// ValidCategory reports whether tag is a known item category.
func ValidCategory(tag string) bool {
	_, ok := CategoryNames[tag]
	return ok
}
