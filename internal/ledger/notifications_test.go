package ledger

import (
	"context"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func TestNotify(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	t.Run("self notification is not stored", func(t *testing.T) {
		id, err := f.Notifications.Notify(ctx, "u1", "u1", models.NotificationComment, Payload{Text: "hi"})
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		if id != "" {
			t.Errorf("expected empty id, got %q", id)
		}
		list, _ := f.Notifications.ListNotifications(ctx, "u1")
		if len(list) != 0 {
			t.Errorf("expected no notifications, got %d", len(list))
		}
	})

	t.Run("team notifications require a team", func(t *testing.T) {
		_, err := f.Notifications.Notify(ctx, "u2", "u1", models.NotificationTeamInvite, Payload{})
		assertKind(t, err, KindValidation)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := f.Notifications.Notify(ctx, "u2", "u1", "like", Payload{})
		assertKind(t, err, KindValidation)
	})
}

func TestListNotifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "u1")
	sender := f.user(t, "u2")

	first, _ := f.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, Payload{Text: "first"})
	second, _ := f.Notifications.Notify(ctx, "u1", "u3", models.NotificationComment, Payload{Text: "second"})

	nick := "Wanderer"
	if _, err := f.Users.UpdateProfile(ctx, sender.ID, ProfileUpdate{Nickname: &nick}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	list, err := f.Notifications.ListNotifications(ctx, "u1")
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	if list[0].ID != second || list[1].ID != first {
		t.Errorf("order: got %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].FromName != "Unknown" {
		t.Errorf("missing sender: got %q, want Unknown", list[0].FromName)
	}
	if list[1].FromName != "Wanderer" {
		t.Errorf("sender name should reflect current profile, got %q", list[1].FromName)
	}
}

func TestAcceptNotification(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *models.Team, string) {
		f := newFixture(t, nil)
		f.user(t, "owner")
		f.user(t, "guest")
		team, _ := f.Membership.CreateTeam(ctx, "Alpha", "owner", nil)
		id, err := f.Notifications.Notify(ctx, "guest", "owner", models.NotificationTeamInvite, Payload{
			TeamID:   team.ID,
			TeamName: team.Name,
		})
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		return f, team, id
	}

	t.Run("runs all three steps", func(t *testing.T) {
		f, team, id := setup(t)
		if err := f.Notifications.AcceptNotification(ctx, id, "guest"); err != nil {
			t.Fatalf("AcceptNotification failed: %v", err)
		}
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner", "guest"})

		inbox, _ := f.Notifications.ListNotifications(ctx, "guest")
		if len(inbox) != 0 {
			t.Errorf("invite should be consumed, got %d", len(inbox))
		}
		replies, _ := f.Notifications.ListNotifications(ctx, "owner")
		if len(replies) != 1 || replies[0].Type != models.NotificationTeamInviteAccept {
			t.Fatalf("expected one accept reply, got %+v", replies)
		}
		if replies[0].TeamID != team.ID || replies[0].FromUserID != "guest" {
			t.Errorf("reply payload: got %+v", replies[0].Notification)
		}
	})

	t.Run("retry after partial failure completes without duplicates", func(t *testing.T) {
		f, team, id := setup(t)
		// Simulate a crash after step 1: member added, reply not written,
		// invite not deleted.
		if _, err := f.Membership.addMember(ctx, team.ID, "guest"); err != nil {
			t.Fatalf("addMember failed: %v", err)
		}

		if err := f.Notifications.AcceptNotification(ctx, id, "guest"); err != nil {
			t.Fatalf("AcceptNotification failed: %v", err)
		}
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner", "guest"})
		replies, _ := f.Notifications.ListNotifications(ctx, "owner")
		if len(replies) != 1 {
			t.Errorf("expected one reply, got %d", len(replies))
		}
	})

	t.Run("retry after the invite is gone is NotFound", func(t *testing.T) {
		f, _, id := setup(t)
		if err := f.Notifications.AcceptNotification(ctx, id, "guest"); err != nil {
			t.Fatalf("AcceptNotification failed: %v", err)
		}
		err := f.Notifications.AcceptNotification(ctx, id, "guest")
		assertKind(t, err, KindNotFound)
	})

	t.Run("only the recipient can accept", func(t *testing.T) {
		f, _, id := setup(t)
		err := f.Notifications.AcceptNotification(ctx, id, "owner")
		assertKind(t, err, KindForbidden)
	})

	t.Run("only invites can be accepted", func(t *testing.T) {
		f, _, _ := setup(t)
		id, _ := f.Notifications.Notify(ctx, "guest", "owner", models.NotificationComment, Payload{Text: "hi"})
		err := f.Notifications.AcceptNotification(ctx, id, "guest")
		assertKind(t, err, KindValidation)
	})
}

func TestAcceptNotification_LinkedRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *models.Team, *models.TeamRequest, string) {
		f := newFixture(t, nil)
		f.user(t, "owner")
		f.user(t, "guest")
		team, _ := f.Membership.CreateTeam(ctx, "Alpha", "owner", nil)
		req, err := f.Membership.Invite(ctx, "owner", "guest", team.ID)
		if err != nil {
			t.Fatalf("Invite failed: %v", err)
		}
		id, err := f.Notifications.Notify(ctx, "guest", "owner", models.NotificationTeamInvite, Payload{
			TeamID:    team.ID,
			TeamName:  team.Name,
			RequestID: req.ID,
		})
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}
		return f, team, req, id
	}

	t.Run("accepting the request consumes the invite", func(t *testing.T) {
		f, _, req, id := setup(t)
		if _, err := f.Membership.AcceptInvite(ctx, req.ID, "guest"); err != nil {
			t.Fatalf("AcceptInvite failed: %v", err)
		}
		err := f.Notifications.AcceptNotification(ctx, id, "guest")
		assertKind(t, err, KindNotFound)
	})

	t.Run("accepting the invite resolves the request", func(t *testing.T) {
		f, team, req, id := setup(t)
		if err := f.Notifications.AcceptNotification(ctx, id, "guest"); err != nil {
			t.Fatalf("AcceptNotification failed: %v", err)
		}
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner", "guest"})
		reqs, _ := f.Membership.ListRequests(ctx, "guest")
		if len(reqs) != 0 {
			t.Errorf("request should no longer be pending, got %d", len(reqs))
		}

		if _, err := f.Membership.RemoveMember(ctx, team.ID, "guest", "owner"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if _, err := f.Membership.AcceptInvite(ctx, req.ID, "guest"); err != nil {
			t.Fatalf("AcceptInvite failed: %v", err)
		}
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner"})
	})

	t.Run("leftover invite after removal does not re-add", func(t *testing.T) {
		f, team, req, _ := setup(t)
		if _, err := f.Membership.AcceptInvite(ctx, req.ID, "guest"); err != nil {
			t.Fatalf("AcceptInvite failed: %v", err)
		}
		if _, err := f.Membership.RemoveMember(ctx, team.ID, "guest", "owner"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		// An invite whose cleanup failed is still in the inbox.
		leftover, err := f.Notifications.Notify(ctx, "guest", "owner", models.NotificationTeamInvite, Payload{
			TeamID:    team.ID,
			RequestID: req.ID,
		})
		if err != nil {
			t.Fatalf("Notify failed: %v", err)
		}

		if err := f.Notifications.AcceptNotification(ctx, leftover, "guest"); err != nil {
			t.Fatalf("AcceptNotification failed: %v", err)
		}
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner"})
		inbox, _ := f.Notifications.ListNotifications(ctx, "guest")
		if len(inbox) != 0 {
			t.Errorf("leftover invite should be deleted, got %d", len(inbox))
		}
		replies, _ := f.Notifications.ListNotifications(ctx, "owner")
		if len(replies) != 0 {
			t.Errorf("no accept reply expected, got %d", len(replies))
		}
	})

	t.Run("rejecting the request consumes the invite", func(t *testing.T) {
		f, team, req, id := setup(t)
		if err := f.Membership.RejectInvite(ctx, req.ID, "guest"); err != nil {
			t.Fatalf("RejectInvite failed: %v", err)
		}
		err := f.Notifications.AcceptNotification(ctx, id, "guest")
		assertKind(t, err, KindNotFound)
		assertStrings(t, "members", f.team(t, team.ID).Members, []string{"owner"})
	})
}

func TestDeleteAndMarkSeen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	id, _ := f.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, Payload{Text: "hi"})

	t.Run("MarkSeen by another user is forbidden", func(t *testing.T) {
		err := f.Notifications.MarkSeen(ctx, id, "u2")
		assertKind(t, err, KindForbidden)
	})

	t.Run("MarkSeen", func(t *testing.T) {
		if err := f.Notifications.MarkSeen(ctx, id, "u1"); err != nil {
			t.Fatalf("MarkSeen failed: %v", err)
		}
		list, _ := f.Notifications.ListNotifications(ctx, "u1")
		if !list[0].Seen {
			t.Error("expected seen")
		}
	})

	t.Run("Delete by another user is forbidden", func(t *testing.T) {
		err := f.Notifications.DeleteNotification(ctx, id, "u2")
		assertKind(t, err, KindForbidden)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := f.Notifications.DeleteNotification(ctx, id, "u1"); err != nil {
				t.Fatalf("DeleteNotification #%d failed: %v", i+1, err)
			}
		}
		if err := f.Notifications.DeleteNotification(ctx, "never-existed", ""); err != nil {
			t.Fatalf("DeleteNotification(absent) failed: %v", err)
		}
	})
}

func TestPruneSeen(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	old, _ := f.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, Payload{Text: "old"})
	unseen, _ := f.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, Payload{Text: "unseen"})
	f.Notifications.MarkSeen(ctx, old, "u1")
	cutoff := f.Notifications.nowMillis()
	recent, _ := f.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, Payload{Text: "recent"})
	f.Notifications.MarkSeen(ctx, recent, "u1")

	pruned, err := f.Notifications.PruneSeen(ctx, cutoff)
	if err != nil {
		t.Fatalf("PruneSeen failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned: got %d, want 1", pruned)
	}

	list, _ := f.Notifications.ListNotifications(ctx, "u1")
	ids := make([]string, 0, len(list))
	for _, n := range list {
		ids = append(ids, n.ID)
	}
	assertStrings(t, "remaining", ids, []string{recent, unseen})
}
