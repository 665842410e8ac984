package models

// BackpackItem is a piece of gear in a user's backpack.
type BackpackItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}
