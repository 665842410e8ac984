package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Moderation is the admin gate. Every operation checks the acting user's
// role through RequireAdmin before doing anything else.
type Moderation struct {
	base
	users  *Directory
	places *Places
}

// NewModeration creates the moderation gate.
func NewModeration(store storage.Store, users *Directory, places *Places, opts ...Option) *Moderation {
	return &Moderation{
		base:   newBase(store, opts),
		users:  users,
		places: places,
	}
}

// RequireAdmin returns the acting user if they hold the admin role.
// Unknown users and non-admins get ErrForbidden.
func (m *Moderation) RequireAdmin(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, fmt.Errorf("no acting user: %w", ErrForbidden)
	}
	user, err := m.users.GetUser(ctx, uid)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("user %q: %w", uid, ErrForbidden)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("user %q is not an admin: %w", uid, ErrForbidden)
	}
	return user, nil
}

const millisPerHour = 3600 * 1000

// Ban records a ban on targetUID lasting hours. An empty banType means "all".
// The ban is only recorded here; enforcing it is up to the callers.
func (m *Moderation) Ban(ctx context.Context, actingUID, targetUID string, hours int, banType string) (*models.User, error) {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return nil, err
	}
	if err := validateStruct(struct {
		TargetID string `json:"targetId" validate:"required"`
		Hours    int    `json:"hours" validate:"gt=0"`
		BanType  string `json:"banType" validate:"max=32"`
	}{targetUID, hours, banType}); err != nil {
		return nil, err
	}
	if banType == "" {
		banType = models.BanAll
	}

	expiresAt := m.nowMillis() + int64(hours)*millisPerHour
	user, err := m.users.setBan(ctx, targetUID, banType, expiresAt)
	if err != nil {
		return nil, err
	}
	slog.Info("User banned", "user_id", targetUID, "ban_type", banType, "expires_at", expiresAt, "admin_id", actingUID)
	return user, nil
}

// Unban clears the ban state of targetUID.
func (m *Moderation) Unban(ctx context.Context, actingUID, targetUID string) (*models.User, error) {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return nil, err
	}
	if targetUID == "" {
		return nil, invalid("userId", "is required")
	}
	user, err := m.users.setBan(ctx, targetUID, models.BanNone, 0)
	if err != nil {
		return nil, err
	}
	slog.Info("User unbanned", "user_id", targetUID, "admin_id", actingUID)
	return user, nil
}

// ListUsers returns every user.
func (m *Moderation) ListUsers(ctx context.Context, actingUID string) ([]models.User, error) {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return nil, err
	}
	return m.users.ListUsers(ctx)
}

// DeleteUser deletes a user document. Admins cannot delete themselves.
func (m *Moderation) DeleteUser(ctx context.Context, actingUID, targetUID string) error {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return err
	}
	if targetUID == actingUID {
		return invalid("userId", "cannot delete the acting admin")
	}
	return m.users.DeleteUser(ctx, targetUID)
}

// ListReports returns open reports, newest first.
func (m *Moderation) ListReports(ctx context.Context, actingUID string) ([]models.Report, error) {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return nil, err
	}
	reports, err := query[models.Report](ctx, &m.base, models.CollectionReports)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt > reports[j].CreatedAt
	})
	return reports, nil
}

// RemoveReportedComment resolves a report by deleting the reported comment
// and then the report. The comment removal is idempotent, so a retry after a
// failed report delete completes the resolution.
func (m *Moderation) RemoveReportedComment(ctx context.Context, actingUID, reportID string) error {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return err
	}
	report, err := get[models.Report](ctx, &m.base, models.CollectionReports, reportID)
	if err != nil {
		return err
	}
	if err := m.places.removeComment(ctx, report.PlaceID, report.CommentID); err != nil {
		return err
	}
	if err := m.delete(ctx, models.CollectionReports, reportID); err != nil {
		return err
	}
	slog.Info("Reported comment removed",
		"report_id", reportID,
		"place_id", report.PlaceID,
		"comment_id", report.CommentID,
		"admin_id", actingUID,
	)
	return nil
}

// DismissReport resolves a report without touching the comment. Dismissing
// an absent report succeeds.
func (m *Moderation) DismissReport(ctx context.Context, actingUID, reportID string) error {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return err
	}
	if reportID == "" {
		return invalid("reportId", "is required")
	}
	if err := m.delete(ctx, models.CollectionReports, reportID); err != nil {
		return err
	}
	slog.Info("Report dismissed", "report_id", reportID, "admin_id", actingUID)
	return nil
}

// ListPlaces returns every place.
func (m *Moderation) ListPlaces(ctx context.Context, actingUID string) ([]models.Place, error) {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return nil, err
	}
	return m.places.ListPlaces(ctx)
}

// DeletePlace deletes a place. Favorites and visits that reference it are
// left to resolve as missing.
func (m *Moderation) DeletePlace(ctx context.Context, actingUID, placeID string) error {
	if _, err := m.RequireAdmin(ctx, actingUID); err != nil {
		return err
	}
	if placeID == "" {
		return invalid("placeId", "is required")
	}
	if err := m.delete(ctx, models.CollectionPlaces, placeID); err != nil {
		return err
	}
	slog.Info("Place deleted", "place_id", placeID, "admin_id", actingUID)
	return nil
}
