package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.AdminService = (*AdminService)(nil)

// AdminService implements the Connect AdminService. Authority is checked by
// the moderation ledger on every call; the transport only authenticates.
type AdminService struct {
	moderation *ledger.Moderation
	membership *ledger.Membership
	visits     *ledger.Visits
}

// NewAdminService creates an AdminService. Membership and visits back the
// index maintenance calls.
func NewAdminService(moderation *ledger.Moderation, membership *ledger.Membership, visits *ledger.Visits) *AdminService {
	return &AdminService{moderation: moderation, membership: membership, visits: visits}
}

// ListUsers returns every account.
func (s *AdminService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.moderation.ListUsers(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListUsers", err)
	}
	accounts := make([]*api.Account, len(users))
	for i := range users {
		accounts[i] = api.NewAccount(&users[i])
	}

	slog.Info("ListUsers successful", "count", len(accounts))
	return connect.NewResponse(&api.ListUsersResponse{Users: accounts}), nil
}

// BanUser bans a user for a number of hours.
func (s *AdminService) BanUser(ctx context.Context, req *connect.Request[api.BanUserRequest]) (*connect.Response[api.AccountResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("BanUser request received", "target_user_id", req.Msg.UserID, "hours", req.Msg.Hours, "ban_type", req.Msg.BanType)

	user, err := s.moderation.Ban(ctx, uid, req.Msg.UserID, req.Msg.Hours, req.Msg.BanType)
	if err != nil {
		return nil, failed(ctx, "BanUser", err, "target_user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.AccountResponse{Account: api.NewAccount(user)}), nil
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, req *connect.Request[api.UserRequest]) (*connect.Response[api.AccountResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UnbanUser request received", "target_user_id", req.Msg.UserID)

	user, err := s.moderation.Unban(ctx, uid, req.Msg.UserID)
	if err != nil {
		return nil, failed(ctx, "UnbanUser", err, "target_user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.AccountResponse{Account: api.NewAccount(user)}), nil
}

// DeleteUser deletes an account.
func (s *AdminService) DeleteUser(ctx context.Context, req *connect.Request[api.UserRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteUser request received", "target_user_id", req.Msg.UserID)

	if err := s.moderation.DeleteUser(ctx, uid, req.Msg.UserID); err != nil {
		return nil, failed(ctx, "DeleteUser", err, "target_user_id", req.Msg.UserID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListReports returns open comment reports.
func (s *AdminService) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.moderation.ListReports(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListReports", err)
	}
	return connect.NewResponse(&api.ListReportsResponse{Reports: reports}), nil
}

// RemoveReportedComment deletes the reported comment and closes the report.
func (s *AdminService) RemoveReportedComment(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveReportedComment request received", "report_id", req.Msg.ReportID)

	if err := s.moderation.RemoveReportedComment(ctx, uid, req.Msg.ReportID); err != nil {
		return nil, failed(ctx, "RemoveReportedComment", err, "report_id", req.Msg.ReportID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// DismissReport closes a report and keeps the comment.
func (s *AdminService) DismissReport(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DismissReport request received", "report_id", req.Msg.ReportID)

	if err := s.moderation.DismissReport(ctx, uid, req.Msg.ReportID); err != nil {
		return nil, failed(ctx, "DismissReport", err, "report_id", req.Msg.ReportID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListPlaces returns every place.
func (s *AdminService) ListPlaces(ctx context.Context, req *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	places, err := s.moderation.ListPlaces(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListPlaces", err)
	}
	return connect.NewResponse(&api.ListPlacesResponse{Places: places}), nil
}

// DeletePlace deletes a place.
func (s *AdminService) DeletePlace(ctx context.Context, req *connect.Request[api.DeletePlaceRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeletePlace request received", "place_id", req.Msg.PlaceID)

	if err := s.moderation.DeletePlace(ctx, uid, req.Msg.PlaceID); err != nil {
		return nil, failed(ctx, "DeletePlace", err, "place_id", req.Msg.PlaceID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RepairVisitIndex re-adds a visit to its teammates' visited indexes.
func (s *AdminService) RepairVisitIndex(ctx context.Context, req *connect.Request[api.RepairVisitIndexRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.moderation.RequireAdmin(ctx, uid); err != nil {
		return nil, failed(ctx, "RepairVisitIndex", err)
	}

	if err := s.visits.RepairVisitIndex(ctx, req.Msg.VisitID); err != nil {
		return nil, failed(ctx, "RepairVisitIndex", err, "visit_id", req.Msg.VisitID)
	}
	slog.Info("Visit index repaired", "visit_id", req.Msg.VisitID)
	return connect.NewResponse(&api.Empty{}), nil
}

// ReconcileTeams rebuilds the userTeams indexes now instead of waiting for
// the maintenance schedule.
func (s *AdminService) ReconcileTeams(ctx context.Context, req *connect.Request[api.ReconcileTeamsRequest]) (*connect.Response[api.ReconcileTeamsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.moderation.RequireAdmin(ctx, uid); err != nil {
		return nil, failed(ctx, "ReconcileTeams", err)
	}

	repair, err := s.membership.ReconcileUserTeams(ctx)
	if err != nil {
		return nil, failed(ctx, "ReconcileTeams", err)
	}
	return connect.NewResponse(&api.ReconcileTeamsResponse{Added: repair.Added, Removed: repair.Removed}), nil
}
