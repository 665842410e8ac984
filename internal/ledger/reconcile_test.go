package ledger

import (
	"context"
	"testing"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
)

func TestReconcileUserTeams(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "u1")
	f.user(t, "u2")

	team, _ := f.Membership.CreateTeam(ctx, "Alpha", "u1", nil)
	f.Membership.AddMember(ctx, team.ID, "u2", "u1")

	// Drift: u2's entry lost, u1 pointing at a team that no longer exists.
	f.Membership.removeFromSet(ctx, models.CollectionUserTeams, "u2", team.ID)
	f.Membership.addToSet(ctx, models.CollectionUserTeams, "u1", "deleted-team")

	repair, err := f.Membership.ReconcileUserTeams(ctx)
	if err != nil {
		t.Fatalf("ReconcileUserTeams failed: %v", err)
	}
	if repair.Added != 1 || repair.Removed != 1 {
		t.Errorf("repair: got %+v, want 1 added 1 removed", repair)
	}

	for _, uid := range []string{"u1", "u2"} {
		ids, _ := f.Membership.MyTeamIDs(ctx, uid)
		assertStrings(t, "userTeams("+uid+")", ids, []string{team.ID})
	}

	repair, err = f.Membership.ReconcileUserTeams(ctx)
	if err != nil {
		t.Fatalf("second ReconcileUserTeams failed: %v", err)
	}
	if repair != (IndexRepair{}) {
		t.Errorf("second run should be a no-op, got %+v", repair)
	}
}
