package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.PlaceService = (*PlaceService)(nil)

// PlaceService implements the Connect PlaceService.
type PlaceService struct {
	places *ledger.Places
}

// NewPlaceService creates a PlaceService.
func NewPlaceService(places *ledger.Places) *PlaceService {
	return &PlaceService{places: places}
}

// AddPlace stores a place added by the caller.
func (s *PlaceService) AddPlace(ctx context.Context, req *connect.Request[api.AddPlaceRequest]) (*connect.Response[api.PlaceResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddPlace request received", "name", req.Msg.Name, "city", req.Msg.City)

	place, err := s.places.AddPlace(ctx, uid, ledger.PlaceInput{
		Name:      req.Msg.Name,
		City:      req.Msg.City,
		Photos:    req.Msg.Photos,
		Latitude:  req.Msg.Latitude,
		Longitude: req.Msg.Longitude,
	})
	if err != nil {
		return nil, failed(ctx, "AddPlace", err)
	}

	slog.Info("Place created", "place_id", place.ID)
	return connect.NewResponse(&api.PlaceResponse{Place: place}), nil
}

// GetPlace returns one place.
func (s *PlaceService) GetPlace(ctx context.Context, req *connect.Request[api.GetPlaceRequest]) (*connect.Response[api.PlaceResponse], error) {
	place, err := s.places.GetPlace(ctx, req.Msg.PlaceID)
	if err != nil {
		return nil, failed(ctx, "GetPlace", err, "place_id", req.Msg.PlaceID)
	}
	return connect.NewResponse(&api.PlaceResponse{Place: place}), nil
}

// ListPlaces returns every place, newest first.
func (s *PlaceService) ListPlaces(ctx context.Context, req *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error) {
	places, err := s.places.ListPlaces(ctx)
	if err != nil {
		return nil, failed(ctx, "ListPlaces", err)
	}

	slog.Info("ListPlaces successful", "count", len(places))
	return connect.NewResponse(&api.ListPlacesResponse{Places: places}), nil
}

// AddComment comments on a place as the caller.
func (s *PlaceService) AddComment(ctx context.Context, req *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddComment request received", "place_id", req.Msg.PlaceID)

	comment, err := s.places.AddComment(ctx, req.Msg.PlaceID, uid, req.Msg.Text)
	if err != nil {
		return nil, failed(ctx, "AddComment", err, "place_id", req.Msg.PlaceID)
	}
	return connect.NewResponse(&api.CommentResponse{Comment: comment}), nil
}

// ListComments returns a place's comments, newest first.
func (s *PlaceService) ListComments(ctx context.Context, req *connect.Request[api.ListCommentsRequest]) (*connect.Response[api.ListCommentsResponse], error) {
	comments, err := s.places.ListComments(ctx, req.Msg.PlaceID)
	if err != nil {
		return nil, failed(ctx, "ListComments", err, "place_id", req.Msg.PlaceID)
	}
	return connect.NewResponse(&api.ListCommentsResponse{Comments: comments}), nil
}

// ReportComment flags a comment for moderators.
func (s *PlaceService) ReportComment(ctx context.Context, req *connect.Request[api.ReportCommentRequest]) (*connect.Response[api.ReportResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ReportComment request received", "place_id", req.Msg.PlaceID, "comment_id", req.Msg.CommentID)

	report, err := s.places.ReportComment(ctx, uid, req.Msg.PlaceID, req.Msg.CommentID, req.Msg.Reason)
	if err != nil {
		return nil, failed(ctx, "ReportComment", err, "comment_id", req.Msg.CommentID)
	}
	return connect.NewResponse(&api.ReportResponse{Report: report}), nil
}
