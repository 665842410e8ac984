package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.FavoriteService = (*FavoriteService)(nil)

// FavoriteService implements the Connect FavoriteService.
type FavoriteService struct {
	favorites *ledger.Favorites
}

// NewFavoriteService creates a FavoriteService.
func NewFavoriteService(favorites *ledger.Favorites) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// SetFavorite marks or unmarks a place as the caller's favorite.
func (s *FavoriteService) SetFavorite(ctx context.Context, req *connect.Request[api.SetFavoriteRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SetFavorite request received", "place_id", req.Msg.PlaceID, "favored", req.Msg.Favored)

	if err := s.favorites.SetFavorite(ctx, uid, req.Msg.PlaceID, req.Msg.Favored); err != nil {
		return nil, failed(ctx, "SetFavorite", err, "place_id", req.Msg.PlaceID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListFavorites returns the caller's favorite place IDs and the places that
// still exist.
func (s *FavoriteService) ListFavorites(ctx context.Context, req *connect.Request[api.ListFavoritesRequest]) (*connect.Response[api.ListFavoritesResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.favorites.FavoriteIDs(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListFavorites", err)
	}
	places, err := s.favorites.ListFavorites(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListFavorites", err)
	}

	slog.Info("ListFavorites successful", "count", len(places))
	return connect.NewResponse(&api.ListFavoritesResponse{PlaceIDs: ids, Places: places}), nil
}
