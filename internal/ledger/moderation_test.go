package ledger

import (
	"context"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "plain")
	f.admin(t, "root")

	for _, uid := range []string{"plain", "ghost", ""} {
		_, err := f.Moderation.RequireAdmin(ctx, uid)
		assertKind(t, err, KindForbidden)
	}

	user, err := f.Moderation.RequireAdmin(ctx, "root")
	if err != nil {
		t.Fatalf("RequireAdmin failed: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q", user.Role)
	}

	t.Run("every admin operation is gated", func(t *testing.T) {
		_, err := f.Moderation.ListUsers(ctx, "plain")
		assertKind(t, err, KindForbidden)
		_, err = f.Moderation.Ban(ctx, "plain", "root", 1, "")
		assertKind(t, err, KindForbidden)
		err = f.Moderation.DismissReport(ctx, "plain", "r1")
		assertKind(t, err, KindForbidden)
		err = f.Moderation.DeletePlace(ctx, "plain", "p1")
		assertKind(t, err, KindForbidden)
	})
}

func TestPromoteLegacyAdmins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "a1")
	f.user(t, "a2")

	promoted, err := f.Users.PromoteLegacyAdmins(ctx, []string{"a1", "missing", "a1"})
	if err != nil {
		t.Fatalf("PromoteLegacyAdmins failed: %v", err)
	}
	if promoted != 1 {
		t.Errorf("promoted: got %d, want 1", promoted)
	}
	promoted, _ = f.Users.PromoteLegacyAdmins(ctx, []string{"a1"})
	if promoted != 0 {
		t.Errorf("second run promoted %d, want 0", promoted)
	}
	if _, err := f.Moderation.RequireAdmin(ctx, "a1"); err != nil {
		t.Errorf("a1 should be admin: %v", err)
	}
	_, err = f.Moderation.RequireAdmin(ctx, "a2")
	assertKind(t, err, KindForbidden)
}

func TestBan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.admin(t, "root")
	f.user(t, "troll")

	before := f.Moderation.nowMillis()
	user, err := f.Moderation.Ban(ctx, "root", "troll", 24, "")
	if err != nil {
		t.Fatalf("Ban failed: %v", err)
	}
	if user.BanType != models.BanAll {
		t.Errorf("banType: got %q, want all", user.BanType)
	}
	// The fixture clock advances one second per read.
	want := before + 1000 + 24*3600*1000
	if user.BanExpiresAt != want {
		t.Errorf("banExpiresAt: got %d, want %d", user.BanExpiresAt, want)
	}

	_, err = f.Moderation.Ban(ctx, "root", "troll", 0, "comment")
	assertKind(t, err, KindValidation)

	_, err = f.Moderation.Ban(ctx, "root", "ghost", 1, "")
	assertKind(t, err, KindNotFound)

	user, err = f.Moderation.Unban(ctx, "root", "troll")
	if err != nil {
		t.Fatalf("Unban failed: %v", err)
	}
	if user.BanType != models.BanNone || user.BanExpiresAt != 0 {
		t.Errorf("after unban: type=%q expires=%d", user.BanType, user.BanExpiresAt)
	}
}

func TestReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.admin(t, "root")
	f.user(t, "author")
	f.user(t, "troll")

	place, _ := f.Places.AddPlace(ctx, "author", PlaceInput{Name: "Lake Camp"})
	keep, _ := f.Places.AddComment(ctx, place.ID, "author", "Welcome")
	bad, _ := f.Places.AddComment(ctx, place.ID, "troll", "spam spam")
	other, _ := f.Places.AddComment(ctx, place.ID, "troll", "borderline")

	report, err := f.Places.ReportComment(ctx, "author", place.ID, bad.ID, "spam")
	if err != nil {
		t.Fatalf("ReportComment failed: %v", err)
	}
	if report.ReportedUserID != "troll" || report.ReportedComment != "spam spam" {
		t.Errorf("report: got %+v", report)
	}
	dismissed, _ := f.Places.ReportComment(ctx, "author", place.ID, other.ID, "rude")

	t.Run("RemoveReportedComment removes only the reported comment", func(t *testing.T) {
		if err := f.Moderation.RemoveReportedComment(ctx, "root", report.ID); err != nil {
			t.Fatalf("RemoveReportedComment failed: %v", err)
		}
		comments, _ := f.Places.ListComments(ctx, place.ID)
		ids := make([]string, 0, len(comments))
		for _, c := range comments {
			ids = append(ids, c.ID)
		}
		assertStrings(t, "comments", ids, []string{other.ID, keep.ID})

		err := f.Moderation.RemoveReportedComment(ctx, "root", report.ID)
		assertKind(t, err, KindNotFound)
	})

	t.Run("DismissReport keeps the comment", func(t *testing.T) {
		if err := f.Moderation.DismissReport(ctx, "root", dismissed.ID); err != nil {
			t.Fatalf("DismissReport failed: %v", err)
		}
		reports, err := f.Moderation.ListReports(ctx, "root")
		if err != nil {
			t.Fatalf("ListReports failed: %v", err)
		}
		if len(reports) != 0 {
			t.Errorf("expected no reports, got %d", len(reports))
		}
		comments, _ := f.Places.ListComments(ctx, place.ID)
		if len(comments) != 2 {
			t.Errorf("expected 2 comments, got %d", len(comments))
		}
	})
}

func TestAdminUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.admin(t, "root")
	f.user(t, "u1")

	users, err := f.Moderation.ListUsers(ctx, "root")
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 2 || users[0].ID != "root" {
		t.Errorf("got %+v", users)
	}

	err = f.Moderation.DeleteUser(ctx, "root", "root")
	assertKind(t, err, KindValidation)

	if err := f.Moderation.DeleteUser(ctx, "root", "u1"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	_, err = f.Users.GetUser(ctx, "u1")
	assertKind(t, err, KindNotFound)
}
