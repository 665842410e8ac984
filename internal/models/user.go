package models

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Ban types. BanNone is written on unban.
const (
	BanNone = "none"
	BanAll  = "all"
)

// User represents a registered account.
type User struct {
	// ID is the account uid (UUID format). It is also the document ID.
	ID string `json:"id"`

	// Name is the display name given at registration.
	Name string `json:"name"`

	// Nickname takes precedence over Name when shown to other users.
	Nickname string `json:"nickname,omitempty"`

	// Email is the login identifier (unique).
	Email string `json:"email"`

	// Avatar is an optional profile picture URL.
	Avatar string `json:"avatar,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"passwordHash,omitempty"`

	// Role is RoleUser or RoleAdmin. It is the only admin authority.
	Role string `json:"role"`

	// BanType describes what the user is banned from ("all", "comment", ...).
	// Enforcement belongs to callers; the ledgers only record it.
	BanType string `json:"banType,omitempty"`

	// BanExpiresAt is the epoch millisecond at which the ban lapses.
	BanExpiresAt int64 `json:"banExpiresAt,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
}

// DisplayName returns the name other users should see.
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown"
	}
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Name != "" {
		return u.Name
	}
	return "Unknown"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// NewUser creates a User with the default role. ID and timestamps are
// assigned by the directory when the user is stored.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         RoleUser,
	}
}

// Profile is the public projection of a User.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Profile returns the public projection of the user.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Nickname: u.Nickname, Avatar: u.Avatar}
}
