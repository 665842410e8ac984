package models

// Place is a location added by a user.
type Place struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	AddedBy   string   `json:"addedBy"`
	Photos    []string `json:"photos,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`

	// Comments are embedded in the place document, oldest first.
	Comments []Comment `json:"comments,omitempty"`

	CreatedAt int64 `json:"createdAt"`
}

// Comment is a user comment embedded in a Place.
type Comment struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar,omitempty"`
	Text      string `json:"comment"`
	CreatedAt int64  `json:"createdAt"`
}

// Report flags a comment for moderator review.
type Report struct {
	ID               string `json:"id"`
	PlaceID          string `json:"placeId"`
	CommentID        string `json:"commentId"`
	ReportedUserID   string `json:"reportedUserId"`
	ReportedUserName string `json:"reportedUserName,omitempty"`
	ReportedComment  string `json:"reportedComment,omitempty"`
	Reason           string `json:"reason"`
	ReporterID       string `json:"reporterId"`
	ReporterName     string `json:"reporterName,omitempty"`
	CreatedAt        int64  `json:"createdAt"`
}
