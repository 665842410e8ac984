package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/metrics"
	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Notifications owns the notifications collection.
type Notifications struct {
	base
	users      *Directory
	membership *Membership
}

// NewNotifications creates the notification fan-out.
func NewNotifications(store storage.Store, users *Directory, membership *Membership, opts ...Option) *Notifications {
	return &Notifications{
		base:       newBase(store, opts),
		users:      users,
		membership: membership,
	}
}

// Payload carries the type specific fields of a notification.
type Payload struct {
	TeamID    string
	TeamName  string
	TeamLogo  string
	RequestID string
	Text      string
	PlaceID   string
	CommentID string
}

type notifyInput struct {
	ToUserID   string `json:"toUserId" validate:"required"`
	FromUserID string `json:"fromUserId" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=comment team_invite team_invite_accept"`
	TeamID     string `json:"teamId" validate:"required_if=Type team_invite,required_if=Type team_invite_accept"`
}

// Notify stores a notification for toUID. A notification from a user to
// themself is dropped: Notify returns an empty ID and writes nothing.
func (n *Notifications) Notify(ctx context.Context, toUID, fromUID, typ string, p Payload) (string, error) {
	if err := validateStruct(notifyInput{toUID, fromUID, typ, p.TeamID}); err != nil {
		return "", err
	}
	if toUID == fromUID {
		metrics.NotificationsSuppressed.WithLabelValues(typ).Inc()
		slog.Debug("Self notification suppressed", "user_id", toUID, "type", typ)
		return "", nil
	}

	notif := &models.Notification{
		ID:         n.newID(),
		ToUserID:   toUID,
		FromUserID: fromUID,
		Type:       typ,
		TeamID:     p.TeamID,
		TeamName:   p.TeamName,
		TeamLogo:   p.TeamLogo,
		RequestID:  p.RequestID,
		Text:       p.Text,
		PlaceID:    p.PlaceID,
		CommentID:  p.CommentID,
		CreatedAt:  n.nowMillis(),
	}
	if err := n.put(ctx, models.CollectionNotifications, notif.ID, notif); err != nil {
		return "", err
	}

	slog.Info("Notification created", "notification_id", notif.ID, "type", typ, "to_user_id", toUID)
	return notif.ID, nil
}

// acceptReplyID derives the reply notification ID from the invite ID, so a
// retried accept overwrites its own earlier reply instead of adding another.
func acceptReplyID(notifID string) string {
	return notifID + "-accept"
}

// AcceptNotification accepts a team invite notification.
//
// It runs three steps, each safe to repeat: add the recipient to the team
// (deduplicated, with the userTeams index), write a team_invite_accept reply
// to the inviter under a derived ID, and delete the invite. After a partial
// failure the caller retries; once the invite is gone a retry returns
// ErrNotFound.
//
// An invite linked to a TeamRequest is resolved through that request. If the
// request was already accepted, membership is left alone: a member the owner
// removed since then stays removed and the leftover invite is only deleted.
func (n *Notifications) AcceptNotification(ctx context.Context, notifID, actingUID string) error {
	notif, err := get[models.Notification](ctx, &n.base, models.CollectionNotifications, notifID)
	if err != nil {
		return err
	}
	if notif.ToUserID != actingUID {
		return fmt.Errorf("notification %q is addressed to another user: %w", notifID, ErrForbidden)
	}
	if notif.Type != models.NotificationTeamInvite {
		return invalid("type", "must be "+models.NotificationTeamInvite)
	}

	// Step 1: membership.
	var team *models.Team
	if notif.RequestID != "" {
		team, err = n.membership.acceptRequest(ctx, notif.RequestID, actingUID)
	} else {
		team, err = n.membership.join(ctx, notif.TeamID, actingUID)
	}
	if err != nil {
		return err
	}

	// Step 2: reply to the inviter, only while the recipient is a member.
	if notif.FromUserID != actingUID && team.HasMember(actingUID) {
		reply := &models.Notification{
			ID:         acceptReplyID(notifID),
			ToUserID:   notif.FromUserID,
			FromUserID: actingUID,
			Type:       models.NotificationTeamInviteAccept,
			TeamID:     team.ID,
			TeamName:   team.Name,
			TeamLogo:   team.Logo,
			CreatedAt:  n.nowMillis(),
		}
		if err := n.put(ctx, models.CollectionNotifications, reply.ID, reply); err != nil {
			return err
		}
	}

	// Step 3: consume the invite.
	if err := n.delete(ctx, models.CollectionNotifications, notifID); err != nil {
		return err
	}

	slog.Info("Team invite notification accepted",
		"notification_id", notifID,
		"request_id", notif.RequestID,
		"team_id", team.ID,
		"user_id", actingUID,
	)
	return nil
}

// DeleteNotification deletes a notification. Deleting an absent notification
// succeeds. When actingUID is set, only the recipient may delete.
func (n *Notifications) DeleteNotification(ctx context.Context, notifID, actingUID string) error {
	if notifID == "" {
		return invalid("notifId", "is required")
	}
	if actingUID != "" {
		notif, err := get[models.Notification](ctx, &n.base, models.CollectionNotifications, notifID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if notif.ToUserID != actingUID {
			return fmt.Errorf("notification %q is addressed to another user: %w", notifID, ErrForbidden)
		}
	}
	if err := n.delete(ctx, models.CollectionNotifications, notifID); err != nil {
		return err
	}
	slog.Debug("Notification deleted", "notification_id", notifID)
	return nil
}

// MarkSeen flags a notification as seen by its recipient.
func (n *Notifications) MarkSeen(ctx context.Context, notifID, actingUID string) error {
	_, err := mutate(ctx, &n.base, models.CollectionNotifications, notifID, func(notif *models.Notification) (bool, error) {
		if notif.ToUserID != actingUID {
			return false, fmt.Errorf("notification %q is addressed to another user: %w", notifID, ErrForbidden)
		}
		if notif.Seen {
			return false, nil
		}
		notif.Seen = true
		return true, nil
	})
	return err
}

// ListNotifications returns the user's notifications, newest first, each
// with the sender's current display name and avatar. A sender that no longer
// exists is shown as "Unknown".
func (n *Notifications) ListNotifications(ctx context.Context, uid string) ([]models.NotificationView, error) {
	notifs, err := query[models.Notification](ctx, &n.base, models.CollectionNotifications,
		storage.Where("toUserId", storage.OpEqual, uid),
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notifs, func(i, j int) bool {
		return notifs[i].CreatedAt > notifs[j].CreatedAt
	})

	senders := make(map[string]*models.User)
	views := make([]models.NotificationView, 0, len(notifs))
	for _, notif := range notifs {
		sender, ok := senders[notif.FromUserID]
		if !ok {
			sender, err = n.users.GetUser(ctx, notif.FromUserID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			senders[notif.FromUserID] = sender
		}
		view := models.NotificationView{
			Notification: notif,
			FromName:     sender.DisplayName(),
		}
		if sender != nil {
			view.FromAvatar = sender.Avatar
		}
		views = append(views, view)
	}
	return views, nil
}

// PruneSeen deletes seen notifications created before cutoff and returns how
// many were removed.
func (n *Notifications) PruneSeen(ctx context.Context, cutoffMillis int64) (int, error) {
	seen, err := query[models.Notification](ctx, &n.base, models.CollectionNotifications,
		storage.Where("seen", storage.OpEqual, true),
	)
	if err != nil {
		return 0, err
	}
	pruned := 0
	for _, notif := range seen {
		if notif.CreatedAt >= cutoffMillis {
			continue
		}
		if err := n.delete(ctx, models.CollectionNotifications, notif.ID); err != nil {
			return pruned, err
		}
		pruned++
	}
	metrics.NotificationsPruned.Add(float64(pruned))
	return pruned, nil
}
