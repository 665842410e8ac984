package ledger

import (
	"context"
	"testing"
)

func visitInput(placeID string, teammates ...string) VisitInput {
	return VisitInput{
		PlaceID:   placeID,
		Teammates: teammates,
		StartDate: 1_700_000_000_000,
		EndDate:   1_700_086_400_000,
	}
}

func TestUpsertVisit(t *testing.T) {
	ctx := context.Background()

	t.Run("create indexes every teammate", func(t *testing.T) {
		f := newFixture(t, nil)
		id, err := f.Visits.UpsertVisit(ctx, visitInput("p1", "a", "b", "a"))
		if err != nil {
			t.Fatalf("UpsertVisit failed: %v", err)
		}
		for _, uid := range []string{"a", "b"} {
			ids, err := f.Visits.ListVisited(ctx, uid)
			if err != nil {
				t.Fatalf("ListVisited(%s) failed: %v", uid, err)
			}
			assertStrings(t, "visited("+uid+")", ids, []string{id})
		}
	})

	t.Run("update leaves the index stale", func(t *testing.T) {
		f := newFixture(t, nil)
		v1, err := f.Visits.UpsertVisit(ctx, visitInput("p1", "a"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}

		in := visitInput("p1", "b")
		in.ID = v1
		if _, err := f.Visits.UpsertVisit(ctx, in); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		ids, _ := f.Visits.ListVisited(ctx, "a")
		assertStrings(t, "visited(a)", ids, []string{v1})
		ids, _ = f.Visits.ListVisited(ctx, "b")
		if len(ids) != 0 {
			t.Errorf("visited(b): got %v, want empty", ids)
		}

		details, err := f.Visits.GetVisitDetails(ctx, []string{v1})
		if err != nil {
			t.Fatalf("GetVisitDetails failed: %v", err)
		}
		assertStrings(t, "teammates", details[0].Teammates, []string{"b"})
	})

	t.Run("RepairVisitIndex adds current teammates", func(t *testing.T) {
		f := newFixture(t, nil)
		v1, _ := f.Visits.UpsertVisit(ctx, visitInput("p1", "a"))
		in := visitInput("p1", "a", "b")
		in.ID = v1
		f.Visits.UpsertVisit(ctx, in)

		if err := f.Visits.RepairVisitIndex(ctx, v1); err != nil {
			t.Fatalf("RepairVisitIndex failed: %v", err)
		}
		ids, _ := f.Visits.ListVisited(ctx, "b")
		assertStrings(t, "visited(b)", ids, []string{v1})
	})

	t.Run("only teammates can update", func(t *testing.T) {
		f := newFixture(t, nil)
		v1, _ := f.Visits.UpsertVisit(ctx, visitInput("p1", "a", "b"))

		in := visitInput("p1", "c")
		in.ID = v1
		in.ActingUID = "c"
		_, err := f.Visits.UpsertVisit(ctx, in)
		assertKind(t, err, KindForbidden)
		assertStrings(t, "teammates", f.visit(t, v1).Teammates, []string{"a", "b"})

		in.ActingUID = "b"
		if _, err := f.Visits.UpsertVisit(ctx, in); err != nil {
			t.Fatalf("teammate update failed: %v", err)
		}
		assertStrings(t, "teammates", f.visit(t, v1).Teammates, []string{"c"})
	})

	t.Run("moving to another place takes its snapshot", func(t *testing.T) {
		f := newFixture(t, nil)
		f.user(t, "a")
		first, _ := f.Places.AddPlace(ctx, "a", PlaceInput{Name: "Lake Camp", City: "Bolu"})
		second, _ := f.Places.AddPlace(ctx, "a", PlaceInput{Name: "Ridge", City: "Rize"})
		v1, _ := f.Visits.UpsertVisit(ctx, visitInput(first.ID, "a"))

		in := visitInput(second.ID, "a")
		in.ID = v1
		if _, err := f.Visits.UpsertVisit(ctx, in); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		rec := f.visit(t, v1)
		if rec.PlaceName != "Ridge" || rec.City != "Rize" {
			t.Errorf("snapshot: got %q/%q", rec.PlaceName, rec.City)
		}
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t, nil)
		bad := visitInput("p1", "a")
		bad.StartDate, bad.EndDate = bad.EndDate, bad.StartDate
		_, err := f.Visits.UpsertVisit(ctx, bad)
		assertKind(t, err, KindValidation)

		_, err = f.Visits.UpsertVisit(ctx, visitInput("p1"))
		assertKind(t, err, KindValidation)

		_, err = f.Visits.UpsertVisit(ctx, visitInput("", "a"))
		assertKind(t, err, KindValidation)
	})

	t.Run("update of unknown visit", func(t *testing.T) {
		f := newFixture(t, nil)
		in := visitInput("p1", "a")
		in.ID = "missing"
		_, err := f.Visits.UpsertVisit(ctx, in)
		assertKind(t, err, KindNotFound)
	})
}

func TestGetVisitDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.user(t, "a")
	admin := f.admin(t, "root")

	place, _ := f.Places.AddPlace(ctx, "a", PlaceInput{Name: "Lake Camp", City: "Bolu", Photos: []string{"http://img/1"}})
	v1, err := f.Visits.UpsertVisit(ctx, visitInput(place.ID, "a", "ghost"))
	if err != nil {
		t.Fatalf("UpsertVisit failed: %v", err)
	}

	t.Run("resolves place and teammates", func(t *testing.T) {
		details, err := f.Visits.GetVisitDetails(ctx, []string{v1, "missing"})
		if err != nil {
			t.Fatalf("GetVisitDetails failed: %v", err)
		}
		if len(details) != 1 {
			t.Fatalf("expected 1 detail, got %d", len(details))
		}
		d := details[0]
		if d.PlaceName != "Lake Camp" || d.City != "Bolu" {
			t.Errorf("place snapshot: got %q/%q", d.PlaceName, d.City)
		}
		assertStrings(t, "placePhotos", d.PlacePhotos, []string{"http://img/1"})
		if len(d.TeammatesFull) != 2 {
			t.Fatalf("teammatesFull: got %+v", d.TeammatesFull)
		}
		if d.UserMap["a"].Name != "a" {
			t.Errorf("userMap[a]: got %+v", d.UserMap["a"])
		}
		if d.UserMap["ghost"].ID != "ghost" || d.UserMap["ghost"].Name != "" {
			t.Errorf("userMap[ghost]: got %+v", d.UserMap["ghost"])
		}
	})

	t.Run("update without a name keeps the snapshot", func(t *testing.T) {
		in := visitInput(place.ID, "a", "ghost")
		in.ID = v1
		in.Experience = "windy"
		if _, err := f.Visits.UpsertVisit(ctx, in); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		rec := f.visit(t, v1)
		if rec.PlaceName != "Lake Camp" || rec.City != "Bolu" {
			t.Errorf("snapshot after update: got %q/%q", rec.PlaceName, rec.City)
		}
	})

	t.Run("falls back to the snapshot when the place is deleted", func(t *testing.T) {
		if err := f.Moderation.DeletePlace(ctx, admin.ID, place.ID); err != nil {
			t.Fatalf("DeletePlace failed: %v", err)
		}
		details, err := f.Visits.GetVisitDetails(ctx, []string{v1})
		if err != nil {
			t.Fatalf("GetVisitDetails failed: %v", err)
		}
		d := details[0]
		if d.PlaceName != "Lake Camp" || d.City != "Bolu" {
			t.Errorf("fallback: got %q/%q", d.PlaceName, d.City)
		}
		if len(d.PlacePhotos) != 0 {
			t.Errorf("placePhotos: got %v, want empty", d.PlacePhotos)
		}
	})
}
