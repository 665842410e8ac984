package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Places owns places, their embedded comments, and comment reports.
type Places struct {
	base
	users         *Directory
	notifications *Notifications
}

// NewPlaces creates a Places ledger. Comment notifications go through
// notifications.
func NewPlaces(store storage.Store, users *Directory, notifications *Notifications, opts ...Option) *Places {
	return &Places{
		base:          newBase(store, opts),
		users:         users,
		notifications: notifications,
	}
}

// PlaceInput describes a new place.
type PlaceInput struct {
	Name      string   `json:"name" validate:"required,max=200"`
	City      string   `json:"city" validate:"max=100"`
	Photos    []string `json:"photos" validate:"max=20"`
	Latitude  float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64  `json:"longitude" validate:"gte=-180,lte=180"`
}

// AddPlace stores a place added by uid.
func (p *Places) AddPlace(ctx context.Context, uid string, in PlaceInput) (*models.Place, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	place := &models.Place{
		ID:        p.newID(),
		Name:      in.Name,
		City:      in.City,
		AddedBy:   uid,
		Photos:    in.Photos,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		CreatedAt: p.nowMillis(),
	}
	if err := p.put(ctx, models.CollectionPlaces, place.ID, place); err != nil {
		return nil, err
	}
	slog.Info("Place added", "place_id", place.ID, "user_id", uid)
	return place, nil
}

// GetPlace returns the place or ErrNotFound.
func (p *Places) GetPlace(ctx context.Context, placeID string) (*models.Place, error) {
	return get[models.Place](ctx, &p.base, models.CollectionPlaces, placeID)
}

// ListPlaces returns every place, newest first.
func (p *Places) ListPlaces(ctx context.Context) ([]models.Place, error) {
	places, err := query[models.Place](ctx, &p.base, models.CollectionPlaces)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].CreatedAt > places[j].CreatedAt
	})
	return places, nil
}

// AddComment appends a comment to the place and notifies the place's author.
// A failed notification is logged; the comment is kept.
func (p *Places) AddComment(ctx context.Context, placeID, uid, text string) (*models.Comment, error) {
	if err := validateStruct(struct {
		PlaceID string `json:"placeId" validate:"required"`
		UserID  string `json:"userId" validate:"required"`
		Text    string `json:"comment" validate:"required,max=2000"`
	}{placeID, uid, text}); err != nil {
		return nil, err
	}

	author, err := p.users.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	comment := models.Comment{
		ID:        p.newID(),
		UserID:    uid,
		Name:      author.DisplayName(),
		Avatar:    author.Avatar,
		Text:      text,
		CreatedAt: p.nowMillis(),
	}

	place, err := mutate(ctx, &p.base, models.CollectionPlaces, placeID, func(pl *models.Place) (bool, error) {
		pl.Comments = append(pl.Comments, comment)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	_, err = p.notifications.Notify(ctx, place.AddedBy, uid, models.NotificationComment, Payload{
		Text:      fmt.Sprintf("%s commented: %q", comment.Name, text),
		PlaceID:   placeID,
		CommentID: comment.ID,
	})
	if err != nil {
		slog.Warn("Comment notification failed", "place_id", placeID, "comment_id", comment.ID, "error", err)
	}

	slog.Info("Comment added", "place_id", placeID, "comment_id", comment.ID, "user_id", uid)
	return &comment, nil
}

// ListComments returns the place's comments, newest first.
func (p *Places) ListComments(ctx context.Context, placeID string) ([]models.Comment, error) {
	place, err := p.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	comments := append([]models.Comment{}, place.Comments...)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt > comments[j].CreatedAt
	})
	return comments, nil
}

// ReportComment files a report against a comment for moderator review.
func (p *Places) ReportComment(ctx context.Context, reporterUID, placeID, commentID, reason string) (*models.Report, error) {
	if err := validateStruct(struct {
		PlaceID   string `json:"placeId" validate:"required"`
		CommentID string `json:"commentId" validate:"required"`
		Reason    string `json:"reason" validate:"required,max=500"`
	}{placeID, commentID, reason}); err != nil {
		return nil, err
	}

	place, err := p.GetPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	var target *models.Comment
	for i := range place.Comments {
		if place.Comments[i].ID == commentID {
			target = &place.Comments[i]
			break
		}
	}
	if target == nil {
		return nil, notFound("comment", commentID)
	}

	report := &models.Report{
		ID:               p.newID(),
		PlaceID:          placeID,
		CommentID:        commentID,
		ReportedUserID:   target.UserID,
		ReportedUserName: target.Name,
		ReportedComment:  target.Text,
		Reason:           reason,
		ReporterID:       reporterUID,
		ReporterName:     p.users.displayName(ctx, reporterUID),
		CreatedAt:        p.nowMillis(),
	}
	if err := p.put(ctx, models.CollectionReports, report.ID, report); err != nil {
		return nil, err
	}
	slog.Info("Comment reported", "report_id", report.ID, "comment_id", commentID, "reporter_id", reporterUID)
	return report, nil
}

// removeComment drops a comment from the place. A missing place or comment
// is not an error.
func (p *Places) removeComment(ctx context.Context, placeID, commentID string) error {
	_, err := mutate(ctx, &p.base, models.CollectionPlaces, placeID, func(pl *models.Place) (bool, error) {
		kept := make([]models.Comment, 0, len(pl.Comments))
		for _, c := range pl.Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		changed := len(kept) != len(pl.Comments)
		pl.Comments = kept
		return changed, nil
	})
	if KindOf(err) == KindNotFound {
		return nil
	}
	return err
}
