package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage/sqlite"
)

func setupScheduler(t *testing.T, clock *time.Time) (*Scheduler, *ledger.Set) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "camptrack-jobs-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := func() time.Time { return *clock }
	set := ledger.New(store, nil, ledger.WithClock(now))
	s := NewScheduler(set.Notifications, set.Membership, 24*time.Hour)
	s.now = now
	return s, set
}

func TestPruneNotifications(t *testing.T) {
	ctx := context.Background()
	clock := time.UnixMilli(1_700_000_000_000)
	s, set := setupScheduler(t, &clock)

	old, _ := set.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, ledger.Payload{Text: "old"})
	unseen, _ := set.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, ledger.Payload{Text: "unread"})
	set.Notifications.MarkSeen(ctx, old, "u1")

	clock = clock.Add(48 * time.Hour)
	fresh, _ := set.Notifications.Notify(ctx, "u1", "u2", models.NotificationComment, ledger.Payload{Text: "fresh"})
	set.Notifications.MarkSeen(ctx, fresh, "u1")

	pruned, err := s.PruneNotifications(ctx)
	if err != nil {
		t.Fatalf("PruneNotifications failed: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned: got %d, want 1", pruned)
	}

	left, _ := set.Notifications.ListNotifications(ctx, "u1")
	if len(left) != 2 || left[0].ID != fresh || left[1].ID != unseen {
		t.Errorf("unexpected remaining notifications: %+v", left)
	}
}

func TestReconcileTeams(t *testing.T) {
	ctx := context.Background()
	clock := time.UnixMilli(1_700_000_000_000)
	s, set := setupScheduler(t, &clock)

	owner := models.NewUser("owner@example.com", "owner", "hash")
	if err := set.Users.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	team, err := set.Membership.CreateTeam(ctx, "Alpha", owner.ID, nil)
	if err != nil {
		t.Fatalf("CreateTeam failed: %v", err)
	}

	repair, err := s.ReconcileTeams(ctx)
	if err != nil {
		t.Fatalf("ReconcileTeams failed: %v", err)
	}
	if repair != (ledger.IndexRepair{}) {
		t.Errorf("expected no repair, got %+v", repair)
	}
	ids, _ := set.Membership.MyTeamIDs(ctx, owner.ID)
	if len(ids) != 1 || ids[0] != team.ID {
		t.Errorf("userTeams: got %v", ids)
	}
}

func TestStart(t *testing.T) {
	clock := time.Now()
	s, _ := setupScheduler(t, &clock)

	if err := s.Start("not a schedule"); err == nil {
		t.Fatal("expected error for invalid schedule")
	}

	s, _ = setupScheduler(t, &clock)
	if err := s.Start("@every 1h"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()
}
