package ledger

import (
	"context"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func TestComments(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "author")
	f.user(t, "visitor")

	place, err := f.Places.AddPlace(ctx, "author", PlaceInput{Name: "Lake Camp", Latitude: 40.7, Longitude: 31.6})
	if err != nil {
		t.Fatalf("AddPlace failed: %v", err)
	}

	t.Run("AddPlace validates coordinates", func(t *testing.T) {
		_, err := f.Places.AddPlace(ctx, "author", PlaceInput{Name: "Nowhere", Latitude: 91})
		assertKind(t, err, KindValidation)
	})

	t.Run("comment notifies the place author", func(t *testing.T) {
		c, err := f.Places.AddComment(ctx, place.ID, "visitor", "Great spot")
		if err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		if c.Name != "visitor" {
			t.Errorf("comment name: got %q", c.Name)
		}
		inbox, _ := f.Notifications.ListNotifications(ctx, "author")
		if len(inbox) != 1 || inbox[0].Type != models.NotificationComment || inbox[0].CommentID != c.ID {
			t.Errorf("expected comment notification, got %+v", inbox)
		}
	})

	t.Run("author commenting on own place is not notified", func(t *testing.T) {
		if _, err := f.Places.AddComment(ctx, place.ID, "author", "Thanks"); err != nil {
			t.Fatalf("AddComment failed: %v", err)
		}
		inbox, _ := f.Notifications.ListNotifications(ctx, "author")
		if len(inbox) != 1 {
			t.Errorf("expected 1 notification, got %d", len(inbox))
		}
	})

	t.Run("ListComments newest first", func(t *testing.T) {
		comments, err := f.Places.ListComments(ctx, place.ID)
		if err != nil {
			t.Fatalf("ListComments failed: %v", err)
		}
		if len(comments) != 2 || comments[0].Text != "Thanks" || comments[1].Text != "Great spot" {
			t.Errorf("got %+v", comments)
		}
	})

	t.Run("comment on unknown place", func(t *testing.T) {
		_, err := f.Places.AddComment(ctx, "missing", "visitor", "hello")
		assertKind(t, err, KindNotFound)
	})

	t.Run("report unknown comment", func(t *testing.T) {
		_, err := f.Places.ReportComment(ctx, "author", place.ID, "missing", "spam")
		assertKind(t, err, KindNotFound)
	})
}
