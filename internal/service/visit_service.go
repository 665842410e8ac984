package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.VisitService = (*VisitService)(nil)

// VisitService implements the Connect VisitService.
type VisitService struct {
	visits *ledger.Visits
}

// NewVisitService creates a VisitService.
func NewVisitService(visits *ledger.Visits) *VisitService {
	return &VisitService{visits: visits}
}

// UpsertVisit creates a visit, or updates the one named by VisitID.
func (s *VisitService) UpsertVisit(ctx context.Context, req *connect.Request[api.UpsertVisitRequest]) (*connect.Response[api.UpsertVisitResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpsertVisit request received",
		"visit_id", req.Msg.VisitID,
		"place_id", req.Msg.PlaceID,
		"teammates_count", len(req.Msg.Teammates),
	)

	id, err := s.visits.UpsertVisit(ctx, ledger.VisitInput{
		ID:         req.Msg.VisitID,
		ActingUID:  uid,
		PlaceID:    req.Msg.PlaceID,
		PlaceName:  req.Msg.PlaceName,
		City:       req.Msg.City,
		Teammates:  req.Msg.Teammates,
		StartDate:  req.Msg.StartDate,
		EndDate:    req.Msg.EndDate,
		Experience: req.Msg.Experience,
		Photos:     req.Msg.Photos,
	})
	if err != nil {
		return nil, failed(ctx, "UpsertVisit", err, "visit_id", req.Msg.VisitID)
	}

	slog.Info("UpsertVisit successful", "visit_id", id)
	return connect.NewResponse(&api.UpsertVisitResponse{VisitID: id}), nil
}

// ListVisited returns the visit IDs indexed for a user, the caller by default.
func (s *VisitService) ListVisited(ctx context.Context, req *connect.Request[api.ListVisitedRequest]) (*connect.Response[api.ListVisitedResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.UserID != "" {
		uid = req.Msg.UserID
	}

	ids, err := s.visits.ListVisited(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListVisited", err, "user_id", uid)
	}
	return connect.NewResponse(&api.ListVisitedResponse{VisitIDs: ids}), nil
}

// GetVisitDetails resolves visits for display. Unknown IDs are left out.
func (s *VisitService) GetVisitDetails(ctx context.Context, req *connect.Request[api.GetVisitDetailsRequest]) (*connect.Response[api.GetVisitDetailsResponse], error) {
	details, err := s.visits.GetVisitDetails(ctx, req.Msg.VisitIDs)
	if err != nil {
		return nil, failed(ctx, "GetVisitDetails", err, "count", len(req.Msg.VisitIDs))
	}

	slog.Info("GetVisitDetails successful", "requested", len(req.Msg.VisitIDs), "found", len(details))
	return connect.NewResponse(&api.GetVisitDetailsResponse{Visits: details}), nil
}
