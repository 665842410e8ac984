package models

// Team is a group of users with a single owner.
//
// OwnerID is the source of truth for ownership. Members keeps the owner at
// index 0 for display, but no code path derives authority from position.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"teamName"`

	// Logo is the retrieval URL of the team logo asset, empty when unset.
	Logo string `json:"logo,omitempty"`

	OwnerID string `json:"ownerId"`

	// Members is the authoritative member list. It never contains duplicates.
	Members []string `json:"members"`

	CreatedAt int64 `json:"createdAt"`
}

// HasMember reports whether uid is in the member list.
func (t *Team) HasMember(uid string) bool {
	for _, m := range t.Members {
		if m == uid {
			return true
		}
	}
	return false
}

// Request statuses. Resolved requests are kept for history.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// TeamRequest is an invitation from a team owner to another user.
type TeamRequest struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	FromID   string `json:"fromId"`
	FromName string `json:"fromName"`
	ToID     string `json:"toId"`
	ToName   string `json:"toName"`

	// Status is one of RequestPending, RequestAccepted, RequestRejected.
	Status string `json:"status"`

	CreatedAt  int64 `json:"createdAt"`
	ResolvedAt int64 `json:"resolvedAt,omitempty"`
}

// TeamSnapshot is a team together with its members' public profiles.
type TeamSnapshot struct {
	Team
	UserMap map[string]Profile `json:"userMap,omitempty"`
}
