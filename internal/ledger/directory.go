package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Directory owns the users collection. It backs the password authenticator
// and resolves profiles for the other ledgers.
type Directory struct {
	base
}

// NewDirectory creates a Directory over store.
func NewDirectory(store storage.Store, opts ...Option) *Directory {
	return &Directory{base: newBase(store, opts)}
}

type newUserInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,max=80"`
}

// CreateUser assigns an ID and timestamps and stores the user.
// Email uniqueness is checked by the caller.
func (d *Directory) CreateUser(ctx context.Context, user *models.User) error {
	if err := validateStruct(newUserInput{Email: user.Email, Name: user.Name}); err != nil {
		return err
	}
	if user.ID == "" {
		user.ID = d.newID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = d.nowMillis()
	user.UpdatedAt = user.CreatedAt

	if err := d.put(ctx, models.CollectionUsers, user.ID, user); err != nil {
		return err
	}
	slog.Info("User created", "user_id", user.ID, "email", user.Email)
	return nil
}

// GetUser returns the user or ErrNotFound.
func (d *Directory) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return get[models.User](ctx, &d.base, models.CollectionUsers, uid)
}

// GetUserByEmail returns nil, nil when no user has the email.
func (d *Directory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := query[models.User](ctx, &d.base, models.CollectionUsers,
		storage.Where("email", storage.OpEqual, strings.ToLower(strings.TrimSpace(email))),
	)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	if len(users) > 1 {
		slog.Warn("Duplicate email in users collection", "email", email, "count", len(users))
	}
	return &users[0], nil
}

// ProfileUpdate lists the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	Name     *string `json:"name" validate:"omitnil,min=1,max=80"`
	Nickname *string `json:"nickname" validate:"omitnil,max=40"`
	Avatar   *string `json:"avatar" validate:"omitnil,max=2048"`
}

// UpdateProfile applies a profile update to the user.
func (d *Directory) UpdateProfile(ctx context.Context, uid string, upd ProfileUpdate) (*models.User, error) {
	if err := validateStruct(upd); err != nil {
		return nil, err
	}
	return mutate(ctx, &d.base, models.CollectionUsers, uid, func(u *models.User) (bool, error) {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Nickname != nil {
			u.Nickname = *upd.Nickname
		}
		if upd.Avatar != nil {
			u.Avatar = *upd.Avatar
		}
		u.UpdatedAt = d.nowMillis()
		return true, nil
	})
}

// ListUsers returns every user, oldest first.
func (d *Directory) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := query[models.User](ctx, &d.base, models.CollectionUsers)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt < users[j].CreatedAt
	})
	return users, nil
}

// DeleteUser removes the user document. References to the user elsewhere are
// left dangling and resolve as "Unknown". Deleting an absent user succeeds.
func (d *Directory) DeleteUser(ctx context.Context, uid string) error {
	if uid == "" {
		return invalid("userId", "is required")
	}
	if err := d.delete(ctx, models.CollectionUsers, uid); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", uid)
	return nil
}

// Profiles resolves uids to public profiles. Missing users are left out of
// the map.
func (d *Directory) Profiles(ctx context.Context, uids []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(uids))
	for _, uid := range dedupe(uids) {
		user, err := d.GetUser(ctx, uid)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[uid] = user.Profile()
	}
	return out, nil
}

// displayName returns the user's current display name, or "Unknown" when the
// user cannot be read.
func (d *Directory) displayName(ctx context.Context, uid string) string {
	user, _ := d.GetUser(ctx, uid)
	return user.DisplayName()
}

// PromoteLegacyAdmins grants the admin role to each listed uid. Unknown uids
// are logged and skipped. It returns how many users changed role.
func (d *Directory) PromoteLegacyAdmins(ctx context.Context, uids []string) (int, error) {
	promoted := 0
	for _, uid := range dedupe(uids) {
		changed := false
		_, err := mutate(ctx, &d.base, models.CollectionUsers, uid, func(u *models.User) (bool, error) {
			changed = u.Role != models.RoleAdmin
			if !changed {
				return false, nil
			}
			u.Role = models.RoleAdmin
			u.UpdatedAt = d.nowMillis()
			return true, nil
		})
		if errors.Is(err, ErrNotFound) {
			slog.Warn("Legacy admin uid has no user document", "user_id", uid)
			continue
		}
		if err != nil {
			return promoted, err
		}
		if changed {
			promoted++
			slog.Info("Legacy admin promoted to admin role", "user_id", uid)
		}
	}
	return promoted, nil
}

// setBan records ban state on a user.
func (d *Directory) setBan(ctx context.Context, uid, banType string, expiresAt int64) (*models.User, error) {
	return mutate(ctx, &d.base, models.CollectionUsers, uid, func(u *models.User) (bool, error) {
		u.BanType = banType
		u.BanExpiresAt = expiresAt
		u.UpdatedAt = d.nowMillis()
		return true, nil
	})
}
