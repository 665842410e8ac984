package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
)

// Favorites owns the per-user favorite sets, favorites/{uid} → {placeId: true}.
type Favorites struct {
	base
}

// NewFavorites creates a Favorites ledger.
func NewFavorites(store storage.Store, opts ...Option) *Favorites {
	return &Favorites{base: newBase(store, opts)}
}

// SetFavorite adds placeID to or removes it from the user's favorite set.
// Both directions are idempotent. The place is not required to exist.
func (f *Favorites) SetFavorite(ctx context.Context, uid, placeID string, favored bool) error {
	if err := validateStruct(struct {
		UserID  string `json:"userId" validate:"required"`
		PlaceID string `json:"placeId" validate:"required"`
	}{uid, placeID}); err != nil {
		return err
	}

	var err error
	if favored {
		err = f.addToSet(ctx, models.CollectionFavorites, uid, placeID)
	} else {
		err = f.removeFromSet(ctx, models.CollectionFavorites, uid, placeID)
	}
	if err != nil {
		return err
	}

	slog.Debug("Favorite set", "user_id", uid, "place_id", placeID, "favored", favored)
	return nil
}

// FavoriteIDs returns the place IDs in the user's favorite set, sorted.
func (f *Favorites) FavoriteIDs(ctx context.Context, uid string) ([]string, error) {
	return f.readSet(ctx, models.CollectionFavorites, uid)
}

// ListFavorites resolves the user's favorites to places. Favorites pointing at
// deleted places are skipped.
func (f *Favorites) ListFavorites(ctx context.Context, uid string) ([]models.Place, error) {
	ids, err := f.FavoriteIDs(ctx, uid)
	if err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(ids))
	for _, id := range ids {
		place, err := get[models.Place](ctx, &f.base, models.CollectionPlaces, id)
		if errors.Is(err, ErrNotFound) {
			slog.Debug("Skipping dangling favorite", "user_id", uid, "place_id", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	return places, nil
}
