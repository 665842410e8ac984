package models

// VisitRecord is a trip to a place shared by several users.
//
// PlaceName and City are a snapshot taken when the visit is written so the
// record stays readable after the place is deleted.
type VisitRecord struct {
	ID        string `json:"id"`
	PlaceID   string `json:"placeId"`
	PlaceName string `json:"placeName,omitempty"`
	City      string `json:"city,omitempty"`

	// Teammates holds every participant uid. Order carries no meaning.
	Teammates []string `json:"teammates"`

	StartDate  int64    `json:"startDate"`
	EndDate    int64    `json:"endDate"`
	Experience string   `json:"experience,omitempty"`
	Photos     []string `json:"photos,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// VisitDetail is a VisitRecord enriched for display.
type VisitDetail struct {
	VisitRecord
	PlacePhotos   []string           `json:"placePhotos"`
	TeammatesFull []Profile          `json:"teammatesFull"`
	UserMap       map[string]Profile `json:"userMap"`
}
