// Package api defines the request and response messages of the CampTrack
// Connect services. Messages are plain structs encoded with Codec.
package api

import "github.com/berkaygencdogan/camp-track-backend/internal/models"

// Empty is returned by RPCs that have nothing to report.
type Empty struct{}

// Account is a user as seen by the user themself or an admin.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Nickname     string `json:"nickname,omitempty"`
	Avatar       string `json:"avatar,omitempty"`
	Role         string `json:"role"`
	BanType      string `json:"banType,omitempty"`
	BanExpiresAt int64  `json:"banExpiresAt,omitempty"`
	CreatedAt    int64  `json:"createdAt"`
}

// NewAccount projects a stored user, leaving out the password hash.
func NewAccount(u *models.User) *Account {
	return &Account{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Nickname:     u.Nickname,
		Avatar:       u.Avatar,
		Role:         u.Role,
		BanType:      u.BanType,
		BanExpiresAt: u.BanExpiresAt,
		CreatedAt:    u.CreatedAt,
	}
}

// Auth

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Account *Account `json:"account"`
	Token   string   `json:"token"`
}

type MeRequest struct{}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

type AccountResponse struct {
	Account *Account `json:"account"`
}

// Teams

type CreateTeamRequest struct {
	Name            string `json:"teamName"`
	Logo            []byte `json:"logo,omitempty"`
	LogoContentType string `json:"logoContentType,omitempty"`
}

type TeamResponse struct {
	Team *models.Team `json:"team"`
}

type GetTeamRequest struct {
	TeamID string `json:"teamId"`
}

type TeamSnapshotResponse struct {
	Team *models.TeamSnapshot `json:"team"`
}

type ListMyTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []models.Team `json:"teams"`
}

type ListMembersRequest struct {
	TeamID string `json:"teamId"`
}

type ListMembersResponse struct {
	Members []models.Profile `json:"members"`
}

type InviteRequest struct {
	TeamID   string `json:"teamId"`
	ToUserID string `json:"toUserId"`
}

type InviteResponse struct {
	Request *models.TeamRequest `json:"request"`
	// NotificationID is empty when the invitee was not notified.
	NotificationID string `json:"notificationId,omitempty"`
}

type ListRequestsRequest struct{}

type ListRequestsResponse struct {
	Requests []models.TeamRequest `json:"requests"`
}

type AcceptInviteRequest struct {
	RequestID string `json:"requestId"`
}

type RejectInviteRequest struct {
	RequestID string `json:"requestId"`
}

type RemoveMemberRequest struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
}

type RemoveMemberResponse struct {
	Members     []string `json:"members"`
	TeamDeleted bool     `json:"teamDeleted"`
}

type DeleteTeamRequest struct {
	TeamID string `json:"teamId"`
}

type RenameTeamRequest struct {
	TeamID string `json:"teamId"`
	Name   string `json:"teamName"`
}

type UpdateLogoRequest struct {
	TeamID          string `json:"teamId"`
	Logo            []byte `json:"logo"`
	LogoContentType string `json:"logoContentType"`
}

type AddMemberRequest struct {
	TeamID string `json:"teamId"`
	UserID string `json:"userId"`
}

type MembersResponse struct {
	Members []string `json:"members"`
}

// Places

type AddPlaceRequest struct {
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	Photos    []string `json:"photos,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
}

type PlaceResponse struct {
	Place *models.Place `json:"place"`
}

type GetPlaceRequest struct {
	PlaceID string `json:"placeId"`
}

type ListPlacesRequest struct{}

type ListPlacesResponse struct {
	Places []models.Place `json:"places"`
}

type AddCommentRequest struct {
	PlaceID string `json:"placeId"`
	Text    string `json:"comment"`
}

type CommentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type ListCommentsRequest struct {
	PlaceID string `json:"placeId"`
}

type ListCommentsResponse struct {
	Comments []models.Comment `json:"comments"`
}

type ReportCommentRequest struct {
	PlaceID   string `json:"placeId"`
	CommentID string `json:"commentId"`
	Reason    string `json:"reason"`
}

type ReportResponse struct {
	Report *models.Report `json:"report"`
}

// Favorites

type SetFavoriteRequest struct {
	PlaceID string `json:"placeId"`
	Favored bool   `json:"favored"`
}

type ListFavoritesRequest struct{}

type ListFavoritesResponse struct {
	PlaceIDs []string       `json:"placeIds"`
	Places   []models.Place `json:"places"`
}

// Visits

type UpsertVisitRequest struct {
	// VisitID is empty to create a visit.
	VisitID    string   `json:"visitId,omitempty"`
	PlaceID    string   `json:"placeId"`
	PlaceName  string   `json:"name,omitempty"`
	City       string   `json:"city,omitempty"`
	Teammates  []string `json:"teammates"`
	StartDate  int64    `json:"startDate"`
	EndDate    int64    `json:"endDate"`
	Experience string   `json:"experience,omitempty"`
	Photos     []string `json:"photos,omitempty"`
}

type UpsertVisitResponse struct {
	VisitID string `json:"visitId"`
}

type ListVisitedRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"userId,omitempty"`
}

type ListVisitedResponse struct {
	VisitIDs []string `json:"visitIds"`
}

type GetVisitDetailsRequest struct {
	VisitIDs []string `json:"visitIds"`
}

type GetVisitDetailsResponse struct {
	Visits []models.VisitDetail `json:"visits"`
}

// Notifications

type ListNotificationsRequest struct{}

type ListNotificationsResponse struct {
	Notifications []models.NotificationView `json:"notifications"`
}

type NotificationRequest struct {
	NotificationID string `json:"notifId"`
}

// Admin

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []*Account `json:"users"`
}

type BanUserRequest struct {
	UserID  string `json:"userId"`
	Hours   int    `json:"hours"`
	BanType string `json:"banType,omitempty"`
}

type UserRequest struct {
	UserID string `json:"userId"`
}

type ListReportsRequest struct{}

type ListReportsResponse struct {
	Reports []models.Report `json:"reports"`
}

type ReportRequest struct {
	ReportID string `json:"reportId"`
}

type DeletePlaceRequest struct {
	PlaceID string `json:"placeId"`
}

type RepairVisitIndexRequest struct {
	VisitID string `json:"visitId"`
}

type ReconcileTeamsRequest struct{}

type ReconcileTeamsResponse struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Backpack

type GetBackpackRequest struct{}

type AddItemRequest struct {
	Item models.BackpackItem `json:"item"`
}

type RemoveItemRequest struct {
	ItemID string `json:"itemId"`
}

type BackpackResponse struct {
	Items []models.BackpackItem `json:"items"`
}

// Posts

type CreatePostRequest struct {
	Caption string             `json:"caption,omitempty"`
	Medias  []models.PostMedia `json:"medias"`
}

type PostResponse struct {
	Post *models.Post `json:"post"`
}

type GetPostRequest struct {
	PostID string `json:"postId"`
}

type ListPostsRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"userId,omitempty"`
}

type ListPostsResponse struct {
	Posts []models.Post `json:"posts"`
}

// EditPostRequest changes the fields that are set.
type EditPostRequest struct {
	PostID  string             `json:"postId"`
	Caption *string            `json:"caption,omitempty"`
	Medias  []models.PostMedia `json:"medias,omitempty"`
}

type RemoveMediaRequest struct {
	PostID string `json:"postId"`
	URL    string `json:"url"`
}

type RemoveMediaResponse struct {
	Medias []models.PostMedia `json:"medias"`
}

type DeletePostRequest struct {
	PostID string `json:"postId"`
}

type LikePostRequest struct {
	PostID string `json:"postId"`
}

type LikePostResponse struct {
	LikedBy []string `json:"likedBy"`
	Likes   int      `json:"likes"`
}

type AddPostCommentRequest struct {
	PostID string `json:"postId"`
	Text   string `json:"text"`
}

type PostCommentResponse struct {
	Comment *models.PostComment `json:"comment"`
}

type ListPostCommentsRequest struct {
	PostID string `json:"postId"`
}

type ListPostCommentsResponse struct {
	Comments []models.PostComment `json:"comments"`
}

type DeletePostCommentRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
}
