package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Visits owns visit records and the visited/{uid} → {visitId: true} index.
//
// The index is written when a visit is created and is not recomputed when the
// teammate list changes later. Readers should treat it as "visits this user
// was part of at creation time".
type Visits struct {
	base
	users *Directory
}

// NewVisits creates a Visits ledger.
func NewVisits(store storage.Store, users *Directory, opts ...Option) *Visits {
	return &Visits{base: newBase(store, opts), users: users}
}

// VisitInput describes a visit to create or update. A non-empty ID selects
// update. ActingUID, when set, must be a current teammate to update.
type VisitInput struct {
	ID         string   `json:"visitId"`
	ActingUID  string   `json:"-"`
	PlaceID    string   `json:"placeId" validate:"required"`
	PlaceName  string   `json:"name" validate:"max=200"`
	City       string   `json:"city" validate:"max=100"`
	Teammates  []string `json:"teammates" validate:"required,min=1,dive,required"`
	StartDate  int64    `json:"startDate" validate:"required,ltefield=EndDate"`
	EndDate    int64    `json:"endDate" validate:"required"`
	Experience string   `json:"experience" validate:"max=5000"`
	Photos     []string `json:"photos" validate:"max=50"`
}

// UpsertVisit creates or updates a visit and returns its ID.
//
// Update overwrites the record in place, teammates included, and leaves the
// visited index untouched. An empty name or city keeps the stored snapshot
// unless the visit moves to another place. Create writes the record and then
// merges the new ID into every teammate's visited set. If that index write
// fails the new ID is returned together with the error, and RepairVisitIndex
// finishes the job.
func (v *Visits) UpsertVisit(ctx context.Context, in VisitInput) (string, error) {
	if err := validateStruct(in); err != nil {
		return "", err
	}
	teammates := dedupe(in.Teammates)

	if in.ID != "" {
		if err := v.updateVisit(ctx, in, teammates); err != nil {
			return "", err
		}
		return in.ID, nil
	}

	rec := &models.VisitRecord{
		ID:         v.newID(),
		PlaceID:    in.PlaceID,
		PlaceName:  in.PlaceName,
		City:       in.City,
		Teammates:  teammates,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Experience: in.Experience,
		Photos:     in.Photos,
		CreatedAt:  v.nowMillis(),
	}

	// Snapshot the place name so the record survives place deletion.
	if err := v.fillPlace(ctx, rec); err != nil {
		return "", err
	}

	if err := v.put(ctx, models.CollectionVisits, rec.ID, rec); err != nil {
		return "", err
	}
	if err := v.RepairVisitIndex(ctx, rec.ID); err != nil {
		return rec.ID, err
	}

	slog.Info("Visit created", "visit_id", rec.ID, "place_id", rec.PlaceID, "teammates", len(teammates))
	return rec.ID, nil
}

func (v *Visits) updateVisit(ctx context.Context, in VisitInput, teammates []string) error {
	var snapshot models.VisitRecord
	_, err := mutate(ctx, &v.base, models.CollectionVisits, in.ID, func(rec *models.VisitRecord) (bool, error) {
		if in.ActingUID != "" && !slices.Contains(rec.Teammates, in.ActingUID) {
			return false, fmt.Errorf("visit %q can only be edited by its teammates: %w", in.ID, ErrForbidden)
		}
		if rec.PlaceID != in.PlaceID {
			rec.PlaceName, rec.City = "", ""
		}
		rec.PlaceID = in.PlaceID
		if in.PlaceName != "" {
			rec.PlaceName = in.PlaceName
		}
		if in.City != "" {
			rec.City = in.City
		}
		rec.Teammates = teammates
		rec.StartDate = in.StartDate
		rec.EndDate = in.EndDate
		rec.Experience = in.Experience
		rec.Photos = in.Photos
		rec.UpdatedAt = v.nowMillis()
		snapshot = *rec
		return true, nil
	})
	if err != nil {
		return err
	}

	// A move to another place without a name takes the new place's snapshot.
	if snapshot.PlaceName == "" || snapshot.City == "" {
		if err := v.fillPlace(ctx, &snapshot); err != nil {
			return err
		}
		_, err = mutate(ctx, &v.base, models.CollectionVisits, in.ID, func(rec *models.VisitRecord) (bool, error) {
			if rec.PlaceID != snapshot.PlaceID {
				return false, nil
			}
			changed := false
			if rec.PlaceName == "" && snapshot.PlaceName != "" {
				rec.PlaceName, changed = snapshot.PlaceName, true
			}
			if rec.City == "" && snapshot.City != "" {
				rec.City, changed = snapshot.City, true
			}
			return changed, nil
		})
		if err != nil {
			return err
		}
	}

	slog.Info("Visit updated", "visit_id", in.ID, "teammates", len(teammates))
	return nil
}

// fillPlace copies the place name and city into empty snapshot fields. A
// missing place leaves them as they are.
func (v *Visits) fillPlace(ctx context.Context, rec *models.VisitRecord) error {
	if rec.PlaceName != "" && rec.City != "" {
		return nil
	}
	place, err := get[models.Place](ctx, &v.base, models.CollectionPlaces, rec.PlaceID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rec.PlaceName == "" {
		rec.PlaceName = place.Name
	}
	if rec.City == "" {
		rec.City = place.City
	}
	return nil
}

// RepairVisitIndex merges visitID into the visited set of every current
// teammate. It only adds entries.
func (v *Visits) RepairVisitIndex(ctx context.Context, visitID string) error {
	rec, err := get[models.VisitRecord](ctx, &v.base, models.CollectionVisits, visitID)
	if err != nil {
		return err
	}
	for _, uid := range rec.Teammates {
		if err := v.addToSet(ctx, models.CollectionVisited, uid, visitID); err != nil {
			return err
		}
	}
	return nil
}

// ListVisited returns the visit IDs in the user's visited index, sorted.
func (v *Visits) ListVisited(ctx context.Context, uid string) ([]string, error) {
	return v.readSet(ctx, models.CollectionVisited, uid)
}

// GetVisitDetails resolves visits for display. Unknown IDs are dropped from
// the result. When the place is gone the denormalized name and city are used.
// Teammates whose user is gone appear with their ID only.
func (v *Visits) GetVisitDetails(ctx context.Context, ids []string) ([]models.VisitDetail, error) {
	details := make([]models.VisitDetail, 0, len(ids))
	for _, id := range dedupe(ids) {
		rec, err := get[models.VisitRecord](ctx, &v.base, models.CollectionVisits, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		detail := models.VisitDetail{
			VisitRecord: *rec,
			PlacePhotos: []string{},
		}

		place, err := get[models.Place](ctx, &v.base, models.CollectionPlaces, rec.PlaceID)
		switch {
		case err == nil:
			if place.Name != "" {
				detail.PlaceName = place.Name
			}
			if place.City != "" {
				detail.City = place.City
			}
			if place.Photos != nil {
				detail.PlacePhotos = place.Photos
			}
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}

		profiles, err := v.users.Profiles(ctx, rec.Teammates)
		if err != nil {
			return nil, err
		}
		detail.TeammatesFull = make([]models.Profile, 0, len(rec.Teammates))
		detail.UserMap = make(map[string]models.Profile, len(rec.Teammates))
		for _, uid := range rec.Teammates {
			p, ok := profiles[uid]
			if !ok {
				p = models.Profile{ID: uid}
			}
			detail.TeammatesFull = append(detail.TeammatesFull, p)
			detail.UserMap[uid] = p
		}

		details = append(details, detail)
	}
	return details, nil
}
