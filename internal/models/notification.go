package models

// Notification types.
const (
	NotificationComment          = "comment"
	NotificationTeamInvite       = "team_invite"
	NotificationTeamInviteAccept = "team_invite_accept"
)

// Notification is addressed to one user and triggered by another.
type Notification struct {
	ID         string `json:"id"`
	ToUserID   string `json:"toUserId"`
	FromUserID string `json:"fromUserId"`
	Type       string `json:"type"`

	TeamID   string `json:"teamId,omitempty"`
	TeamName string `json:"teamName,omitempty"`
	TeamLogo string `json:"teamLogo,omitempty"`
	Text     string `json:"text,omitempty"`
	// RequestID links a team_invite to the TeamRequest it announces.
	RequestID string `json:"requestId,omitempty"`

	PlaceID   string `json:"placeId,omitempty"`
	CommentID string `json:"commentId,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	Seen      bool  `json:"seen"`
}

// NotificationView is a Notification with the sender's current profile.
type NotificationView struct {
	Notification
	FromName   string `json:"fromName"`
	FromAvatar string `json:"fromAvatar"`
}
