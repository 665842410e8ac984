package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/berkaygencdogan/camp-track-backend/internal/metrics"
	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// IndexRepair counts the reverse index entries a reconciliation changed.
type IndexRepair struct {
	Added   int
	Removed int
}

// ReconcileUserTeams rebuilds userTeams entries from team documents: entries
// for memberships that exist are added, entries for memberships that do not
// are removed. A stale entry is re-checked against the team document right
// before removal so a concurrent join is not undone.
func (m *Membership) ReconcileUserTeams(ctx context.Context) (IndexRepair, error) {
	var repair IndexRepair

	teams, err := query[models.Team](ctx, &m.base, models.CollectionTeams)
	if err != nil {
		return repair, err
	}
	want := make(map[string]map[string]bool)
	for _, team := range teams {
		for _, uid := range team.Members {
			if want[uid] == nil {
				want[uid] = make(map[string]bool)
			}
			want[uid][team.ID] = true
		}
	}

	snaps, err := m.store.Query(ctx, models.CollectionUserTeams)
	if err != nil {
		return repair, storeErr(err)
	}
	have := make(map[string]map[string]bool, len(snaps))
	for _, snap := range snaps {
		set := make(map[string]bool)
		for _, teamID := range storage.Keys(snap.Data) {
			set[teamID] = true
		}
		have[snap.ID] = set
	}

	uids := make([]string, 0, len(want)+len(have))
	for uid := range want {
		uids = append(uids, uid)
	}
	for uid := range have {
		if want[uid] == nil {
			uids = append(uids, uid)
		}
	}
	sort.Strings(uids)

	for _, uid := range uids {
		var missing, stale []string
		for teamID := range want[uid] {
			if !have[uid][teamID] {
				missing = append(missing, teamID)
			}
		}
		for teamID := range have[uid] {
			if want[uid][teamID] {
				continue
			}
			team, err := get[models.Team](ctx, &m.base, models.CollectionTeams, teamID)
			switch {
			case errors.Is(err, ErrNotFound):
				stale = append(stale, teamID)
			case err != nil:
				return repair, err
			case !team.HasMember(uid):
				stale = append(stale, teamID)
			}
		}

		if len(missing) > 0 {
			if err := m.addToSet(ctx, models.CollectionUserTeams, uid, missing...); err != nil {
				return repair, err
			}
			repair.Added += len(missing)
			metrics.IndexRepairs.WithLabelValues(models.CollectionUserTeams, "added").Add(float64(len(missing)))
		}
		if len(stale) > 0 {
			if err := m.removeFromSet(ctx, models.CollectionUserTeams, uid, stale...); err != nil {
				return repair, err
			}
			repair.Removed += len(stale)
			metrics.IndexRepairs.WithLabelValues(models.CollectionUserTeams, "removed").Add(float64(len(stale)))
		}
	}

	if repair.Added > 0 || repair.Removed > 0 {
		slog.Info("userTeams index reconciled", "added", repair.Added, "removed", repair.Removed)
	}
	return repair, nil
}

// MyTeamIDs returns the team IDs in uid's userTeams index, sorted. The index
// may lag behind team documents; ListMyTeams is authoritative.
func (m *Membership) MyTeamIDs(ctx context.Context, uid string) ([]string, error) {
	return m.readSet(ctx, models.CollectionUserTeams, uid)
}
