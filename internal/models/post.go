package models

// PostMedia is one photo or video attached to a post.
type PostMedia struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// Post is a user's photo or video post.
//
// Likes always equals len(LikedBy); both are written in the same
// transaction.
type Post struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Username   string      `json:"username"`
	UserAvatar string      `json:"userAvatar,omitempty"`
	Caption    string      `json:"caption,omitempty"`
	Medias     []PostMedia `json:"medias"`
	LikedBy    []string    `json:"likedBy"`
	Likes      int         `json:"likes"`
	CreatedAt  int64       `json:"createdAt"`
	UpdatedAt  int64       `json:"updatedAt,omitempty"`
}

// PostComment is a comment on a post, stored in its own document.
type PostComment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}
