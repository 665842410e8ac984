package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/assets"
	"github.com/berkaygencdogan/camp-track-backend/internal/metrics"
	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Membership owns teams, team requests and the userTeams reverse index.
//
// Team.Members is authoritative. userTeams/{uid} is a derived "my teams"
// lookup maintained alongside it and repaired by ReconcileUserTeams.
type Membership struct {
	base
	users  *Directory
	assets assets.Store
}

// NewMembership creates a Membership ledger. assetStore may be nil, in which
// case logos are not stored.
func NewMembership(store storage.Store, users *Directory, assetStore assets.Store, opts ...Option) *Membership {
	return &Membership{
		base:   newBase(store, opts),
		users:  users,
		assets: assetStore,
	}
}

// Logo is an uploaded team logo image.
type Logo struct {
	Data        []byte
	ContentType string
}

type createTeamInput struct {
	Name       string `json:"teamName" validate:"required,max=80"`
	CreatorUID string `json:"createdBy" validate:"required"`
}

// CreateTeam creates a team owned by creatorUID, who becomes its only member.
// A logo that cannot be stored is logged and dropped; the team is still created.
func (m *Membership) CreateTeam(ctx context.Context, name, creatorUID string, logo *Logo) (*models.Team, error) {
	if err := validateStruct(createTeamInput{Name: name, CreatorUID: creatorUID}); err != nil {
		return nil, err
	}

	team := &models.Team{
		ID:        m.newID(),
		Name:      name,
		OwnerID:   creatorUID,
		Members:   []string{creatorUID},
		CreatedAt: m.nowMillis(),
	}

	if logo != nil && len(logo.Data) > 0 {
		url, err := m.saveLogo(ctx, team.ID, logo)
		if err != nil {
			slog.Warn("Team logo not stored", "team_id", team.ID, "error", err)
		} else {
			team.Logo = url
		}
	}

	if err := m.put(ctx, models.CollectionTeams, team.ID, team); err != nil {
		return nil, err
	}

	if err := m.addToSet(ctx, models.CollectionUserTeams, creatorUID, team.ID); err != nil {
		slog.Warn("userTeams index not updated", "team_id", team.ID, "user_id", creatorUID, "error", err)
	}

	slog.Info("Team created", "team_id", team.ID, "owner_id", creatorUID)
	return team, nil
}

// Invite creates a pending request from the team owner to toUID. An existing
// pending request for the same user and team is returned instead of a new one.
// Invite does not notify; callers use Notifications.Notify for that.
func (m *Membership) Invite(ctx context.Context, fromUID, toUID, teamID string) (*models.TeamRequest, error) {
	if err := validateStruct(struct {
		FromID string `json:"fromId" validate:"required"`
		ToID   string `json:"toId" validate:"required"`
		TeamID string `json:"teamId" validate:"required"`
	}{fromUID, toUID, teamID}); err != nil {
		return nil, err
	}
	if fromUID == toUID {
		return nil, invalid("toId", "must differ from fromId")
	}

	team, err := m.ownedTeam(ctx, teamID, fromUID)
	if err != nil {
		return nil, err
	}
	if team.HasMember(toUID) {
		return nil, fmt.Errorf("user %q is already a member of team %q: %w", toUID, teamID, ErrConflict)
	}

	invitee, err := m.users.GetUser(ctx, toUID)
	if err != nil {
		return nil, err
	}

	pending, err := query[models.TeamRequest](ctx, &m.base, models.CollectionTeamRequests,
		storage.Where("teamId", storage.OpEqual, teamID),
		storage.Where("toId", storage.OpEqual, toUID),
		storage.Where("status", storage.OpEqual, models.RequestPending),
	)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return &pending[0], nil
	}

	req := &models.TeamRequest{
		ID:        m.newID(),
		TeamID:    teamID,
		TeamName:  team.Name,
		FromID:    fromUID,
		FromName:  m.users.displayName(ctx, fromUID),
		ToID:      toUID,
		ToName:    invitee.DisplayName(),
		Status:    models.RequestPending,
		CreatedAt: m.nowMillis(),
	}
	if err := m.put(ctx, models.CollectionTeamRequests, req.ID, req); err != nil {
		return nil, err
	}

	slog.Info("Team invite created", "request_id", req.ID, "team_id", teamID, "to_id", toUID)
	return req, nil
}

// AcceptInvite adds the invitee to the team and marks the request accepted.
//
// The member add is deduplicated and the index write is a set merge, so
// calling it again after a partial failure completes the flow: the status is
// written last and a half-finished accept is still pending. Once accepted,
// the request is spent. Accepting it again returns the current snapshot and
// does not re-add a member the owner has removed since. Invite notifications
// linked to the request are deleted.
func (m *Membership) AcceptInvite(ctx context.Context, requestID, actingUID string) (*models.TeamSnapshot, error) {
	team, err := m.acceptRequest(ctx, requestID, actingUID)
	if err != nil {
		return nil, err
	}
	m.dropInviteNotifications(ctx, requestID)
	return m.snapshot(ctx, team)
}

// acceptRequest resolves a request for actingUID and returns the team. An
// already accepted request is returned as is, with no membership change.
func (m *Membership) acceptRequest(ctx context.Context, requestID, actingUID string) (*models.Team, error) {
	req, err := get[models.TeamRequest](ctx, &m.base, models.CollectionTeamRequests, requestID)
	if err != nil {
		return nil, err
	}
	if req.ToID != actingUID {
		return nil, fmt.Errorf("request %q is addressed to another user: %w", requestID, ErrForbidden)
	}
	switch req.Status {
	case models.RequestRejected:
		return nil, fmt.Errorf("request %q was rejected: %w", requestID, ErrConflict)
	case models.RequestAccepted:
		return get[models.Team](ctx, &m.base, models.CollectionTeams, req.TeamID)
	}

	team, err := m.join(ctx, req.TeamID, req.ToID)
	if err != nil {
		return nil, err
	}

	_, err = mutate(ctx, &m.base, models.CollectionTeamRequests, requestID, func(r *models.TeamRequest) (bool, error) {
		switch r.Status {
		case models.RequestAccepted:
			return false, nil
		case models.RequestRejected:
			return false, fmt.Errorf("request %q was rejected: %w", requestID, ErrConflict)
		}
		r.Status = models.RequestAccepted
		r.ResolvedAt = m.nowMillis()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Team invite accepted", "request_id", requestID, "team_id", team.ID, "user_id", actingUID)
	return team, nil
}

// join adds uid to the team and to its userTeams index.
func (m *Membership) join(ctx context.Context, teamID, uid string) (*models.Team, error) {
	team, err := m.addMember(ctx, teamID, uid)
	if err != nil {
		return nil, err
	}
	if err := m.addToSet(ctx, models.CollectionUserTeams, uid, teamID); err != nil {
		return nil, err
	}
	return team, nil
}

// dropInviteNotifications deletes the team_invite notifications announcing a
// resolved request. Failures are logged; a leftover invite can no longer
// change membership.
func (m *Membership) dropInviteNotifications(ctx context.Context, requestID string) {
	invites, err := query[models.Notification](ctx, &m.base, models.CollectionNotifications,
		storage.Where("requestId", storage.OpEqual, requestID),
	)
	if err != nil {
		slog.Warn("Invite notifications not cleared", "request_id", requestID, "error", err)
		return
	}
	for _, notif := range invites {
		if notif.Type != models.NotificationTeamInvite {
			continue
		}
		if err := m.delete(ctx, models.CollectionNotifications, notif.ID); err != nil {
			slog.Warn("Invite notification not deleted", "notification_id", notif.ID, "error", err)
		}
	}
}

// RejectInvite marks a pending request rejected. Rejected requests are kept
// for history; rejecting twice is a no-op. Linked invite notifications are
// deleted.
func (m *Membership) RejectInvite(ctx context.Context, requestID, actingUID string) error {
	_, err := mutate(ctx, &m.base, models.CollectionTeamRequests, requestID, func(r *models.TeamRequest) (bool, error) {
		if r.ToID != actingUID {
			return false, fmt.Errorf("request %q is addressed to another user: %w", requestID, ErrForbidden)
		}
		switch r.Status {
		case models.RequestRejected:
			return false, nil
		case models.RequestAccepted:
			return false, fmt.Errorf("request %q was already accepted: %w", requestID, ErrConflict)
		}
		r.Status = models.RequestRejected
		r.ResolvedAt = m.nowMillis()
		return true, nil
	})
	if err != nil {
		return err
	}
	m.dropInviteNotifications(ctx, requestID)
	slog.Info("Team invite rejected", "request_id", requestID, "user_id", actingUID)
	return nil
}

// Removal is the outcome of RemoveMember.
type Removal struct {
	Members []string
	// TeamDeleted is set when the owner removed themself, which deletes the team.
	TeamDeleted bool
}

// RemoveMember removes targetUID from the team. Only the owner may remove
// others; any member may remove themself. The owner is never removed from a
// live team: an owner leaving deletes the team instead.
func (m *Membership) RemoveMember(ctx context.Context, teamID, targetUID, actingUID string) (*Removal, error) {
	team, err := get[models.Team](ctx, &m.base, models.CollectionTeams, teamID)
	if err != nil {
		return nil, err
	}
	if actingUID != team.OwnerID && actingUID != targetUID {
		return nil, fmt.Errorf("only the owner can remove other members of team %q: %w", teamID, ErrForbidden)
	}

	if targetUID == team.OwnerID {
		if err := m.DeleteTeam(ctx, teamID, actingUID); err != nil {
			return nil, err
		}
		return &Removal{Members: []string{}, TeamDeleted: true}, nil
	}

	updated, err := mutate(ctx, &m.base, models.CollectionTeams, teamID, func(t *models.Team) (bool, error) {
		if t.OwnerID == targetUID {
			return false, fmt.Errorf("owner of team %q cannot be removed: %w", teamID, ErrConflict)
		}
		members, changed := without(t.Members, targetUID)
		t.Members = members
		return changed, nil
	})
	if err != nil {
		return nil, err
	}

	if err := m.removeFromSet(ctx, models.CollectionUserTeams, targetUID, teamID); err != nil {
		return nil, err
	}

	slog.Info("Team member removed", "team_id", teamID, "user_id", targetUID, "acting_user_id", actingUID)
	return &Removal{Members: updated.Members}, nil
}

// DeleteTeam deletes the team. Logo removal is best-effort. Requests and
// notifications referencing the team are left in place.
func (m *Membership) DeleteTeam(ctx context.Context, teamID, actingUID string) error {
	team, err := m.ownedTeam(ctx, teamID, actingUID)
	if err != nil {
		return err
	}

	m.deleteLogo(ctx, team.ID, team.Logo)

	if err := m.delete(ctx, models.CollectionTeams, teamID); err != nil {
		return err
	}

	for _, uid := range team.Members {
		if err := m.removeFromSet(ctx, models.CollectionUserTeams, uid, teamID); err != nil {
			slog.Warn("userTeams index not updated", "team_id", teamID, "user_id", uid, "error", err)
		}
	}

	slog.Info("Team deleted", "team_id", teamID, "owner_id", actingUID)
	return nil
}

// RenameTeam changes the team name. Owner only.
func (m *Membership) RenameTeam(ctx context.Context, teamID, actingUID, name string) (*models.Team, error) {
	if err := validateStruct(struct {
		Name string `json:"teamName" validate:"required,max=80"`
	}{name}); err != nil {
		return nil, err
	}
	return mutate(ctx, &m.base, models.CollectionTeams, teamID, func(t *models.Team) (bool, error) {
		if t.OwnerID != actingUID {
			return false, fmt.Errorf("team %q: %w", teamID, ErrForbidden)
		}
		if t.Name == name {
			return false, nil
		}
		t.Name = name
		return true, nil
	})
}

// UpdateLogo replaces the team logo, or clears it when logo is nil. Owner only.
// The previous logo asset is deleted best-effort.
func (m *Membership) UpdateLogo(ctx context.Context, teamID, actingUID string, logo *Logo) (*models.Team, error) {
	if _, err := m.ownedTeam(ctx, teamID, actingUID); err != nil {
		return nil, err
	}

	url := ""
	if logo != nil && len(logo.Data) > 0 {
		var err error
		if url, err = m.saveLogo(ctx, teamID, logo); err != nil {
			return nil, err
		}
	}

	previous := ""
	team, err := mutate(ctx, &m.base, models.CollectionTeams, teamID, func(t *models.Team) (bool, error) {
		if t.OwnerID != actingUID {
			return false, fmt.Errorf("team %q: %w", teamID, ErrForbidden)
		}
		previous = t.Logo
		if t.Logo == url {
			return false, nil
		}
		t.Logo = url
		return true, nil
	})
	if err != nil {
		if url != "" {
			m.deleteLogo(ctx, teamID, url)
		}
		return nil, err
	}

	if previous != "" && previous != url {
		m.deleteLogo(ctx, teamID, previous)
	}
	return team, nil
}

// AddMember adds uid to the team directly, without a request. Owner only.
func (m *Membership) AddMember(ctx context.Context, teamID, uid, actingUID string) ([]string, error) {
	if uid == "" {
		return nil, invalid("userId", "is required")
	}
	if _, err := m.ownedTeam(ctx, teamID, actingUID); err != nil {
		return nil, err
	}
	if _, err := m.users.GetUser(ctx, uid); err != nil {
		return nil, err
	}

	team, err := m.join(ctx, teamID, uid)
	if err != nil {
		return nil, err
	}

	slog.Info("Team member added", "team_id", teamID, "user_id", uid)
	return team.Members, nil
}

// GetTeam returns the team with its members' profiles.
func (m *Membership) GetTeam(ctx context.Context, teamID string) (*models.TeamSnapshot, error) {
	team, err := get[models.Team](ctx, &m.base, models.CollectionTeams, teamID)
	if err != nil {
		return nil, err
	}
	return m.snapshot(ctx, team)
}

// ListMyTeams returns the teams uid belongs to, oldest first. It queries team
// documents directly rather than trusting the userTeams index.
func (m *Membership) ListMyTeams(ctx context.Context, uid string) ([]models.Team, error) {
	teams, err := query[models.Team](ctx, &m.base, models.CollectionTeams,
		storage.Where("members", storage.OpArrayContains, uid),
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].CreatedAt < teams[j].CreatedAt
	})
	return teams, nil
}

// ListMembers returns member profiles in member order. Members whose user
// document is gone are skipped.
func (m *Membership) ListMembers(ctx context.Context, teamID string) ([]models.Profile, error) {
	team, err := get[models.Team](ctx, &m.base, models.CollectionTeams, teamID)
	if err != nil {
		return nil, err
	}
	profiles, err := m.users.Profiles(ctx, team.Members)
	if err != nil {
		return nil, err
	}
	out := make([]models.Profile, 0, len(team.Members))
	for _, uid := range team.Members {
		if p, ok := profiles[uid]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListRequests returns the pending requests addressed to uid, newest first.
func (m *Membership) ListRequests(ctx context.Context, uid string) ([]models.TeamRequest, error) {
	reqs, err := query[models.TeamRequest](ctx, &m.base, models.CollectionTeamRequests,
		storage.Where("toId", storage.OpEqual, uid),
		storage.Where("status", storage.OpEqual, models.RequestPending),
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt > reqs[j].CreatedAt
	})
	return reqs, nil
}

// addMember appends uid to the member list unless already present.
func (m *Membership) addMember(ctx context.Context, teamID, uid string) (*models.Team, error) {
	return mutate(ctx, &m.base, models.CollectionTeams, teamID, func(t *models.Team) (bool, error) {
		members, changed := appendUnique(t.Members, uid)
		t.Members = members
		return changed, nil
	})
}

func (m *Membership) ownedTeam(ctx context.Context, teamID, actingUID string) (*models.Team, error) {
	team, err := get[models.Team](ctx, &m.base, models.CollectionTeams, teamID)
	if err != nil {
		return nil, err
	}
	if team.OwnerID != actingUID {
		return nil, fmt.Errorf("team %q: %w", teamID, ErrForbidden)
	}
	return team, nil
}

func (m *Membership) snapshot(ctx context.Context, team *models.Team) (*models.TeamSnapshot, error) {
	profiles, err := m.users.Profiles(ctx, team.Members)
	if err != nil {
		return nil, err
	}
	return &models.TeamSnapshot{Team: *team, UserMap: profiles}, nil
}

func (m *Membership) saveLogo(ctx context.Context, teamID string, logo *Logo) (string, error) {
	if m.assets == nil {
		return "", fmt.Errorf("asset store not configured: %w", ErrUnavailable)
	}
	path := fmt.Sprintf("teamLogos/%s/%s%s", teamID, m.newID(), logoExt(logo.ContentType))
	return m.assets.Save(ctx, logo.Data, path, logo.ContentType)
}

// deleteLogo removes a logo asset. Failures are logged and counted, never returned.
func (m *Membership) deleteLogo(ctx context.Context, teamID, url string) {
	if url == "" || m.assets == nil {
		return
	}
	path, ok := m.assets.PathFromURL(url)
	if !ok {
		slog.Debug("Team logo not managed by asset store", "team_id", teamID, "logo", url)
		return
	}
	if err := m.assets.Delete(ctx, path); err != nil {
		metrics.AssetDeleteFailures.Inc()
		slog.Warn("Team logo delete failed", "team_id", teamID, "path", path, "error", err)
	}
}

func logoExt(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
