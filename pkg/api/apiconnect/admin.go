package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// AdminServiceName is the fully-qualified name of the AdminService.
const AdminServiceName = "camptrack.v1.AdminService"

// Procedure paths of the AdminService.
const (
	AdminServiceListUsersProcedure             = "/" + AdminServiceName + "/ListUsers"
	AdminServiceBanUserProcedure               = "/" + AdminServiceName + "/BanUser"
	AdminServiceUnbanUserProcedure             = "/" + AdminServiceName + "/UnbanUser"
	AdminServiceDeleteUserProcedure            = "/" + AdminServiceName + "/DeleteUser"
	AdminServiceListReportsProcedure           = "/" + AdminServiceName + "/ListReports"
	AdminServiceRemoveReportedCommentProcedure = "/" + AdminServiceName + "/RemoveReportedComment"
	AdminServiceDismissReportProcedure         = "/" + AdminServiceName + "/DismissReport"
	AdminServiceListPlacesProcedure            = "/" + AdminServiceName + "/ListPlaces"
	AdminServiceDeletePlaceProcedure           = "/" + AdminServiceName + "/DeletePlace"
	AdminServiceRepairVisitIndexProcedure      = "/" + AdminServiceName + "/RepairVisitIndex"
	AdminServiceReconcileTeamsProcedure        = "/" + AdminServiceName + "/ReconcileTeams"
)

// AdminService is the moderation surface. Every call requires the admin role.
type AdminService interface {
	ListUsers(context.Context, *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error)
	BanUser(context.Context, *connect.Request[api.BanUserRequest]) (*connect.Response[api.AccountResponse], error)
	UnbanUser(context.Context, *connect.Request[api.UserRequest]) (*connect.Response[api.AccountResponse], error)
	DeleteUser(context.Context, *connect.Request[api.UserRequest]) (*connect.Response[api.Empty], error)
	ListReports(context.Context, *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error)
	RemoveReportedComment(context.Context, *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error)
	DismissReport(context.Context, *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error)
	ListPlaces(context.Context, *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error)
	DeletePlace(context.Context, *connect.Request[api.DeletePlaceRequest]) (*connect.Response[api.Empty], error)
	RepairVisitIndex(context.Context, *connect.Request[api.RepairVisitIndexRequest]) (*connect.Response[api.Empty], error)
	ReconcileTeams(context.Context, *connect.Request[api.ReconcileTeamsRequest]) (*connect.Response[api.ReconcileTeamsResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewAdminServiceHandler(svc AdminService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(AdminServiceName,
		unary(AdminServiceListUsersProcedure, svc.ListUsers, opts),
		unary(AdminServiceBanUserProcedure, svc.BanUser, opts),
		unary(AdminServiceUnbanUserProcedure, svc.UnbanUser, opts),
		unary(AdminServiceDeleteUserProcedure, svc.DeleteUser, opts),
		unary(AdminServiceListReportsProcedure, svc.ListReports, opts),
		unary(AdminServiceRemoveReportedCommentProcedure, svc.RemoveReportedComment, opts),
		unary(AdminServiceDismissReportProcedure, svc.DismissReport, opts),
		unary(AdminServiceListPlacesProcedure, svc.ListPlaces, opts),
		unary(AdminServiceDeletePlaceProcedure, svc.DeletePlace, opts),
		unary(AdminServiceRepairVisitIndexProcedure, svc.RepairVisitIndex, opts),
		unary(AdminServiceReconcileTeamsProcedure, svc.ReconcileTeams, opts),
	)
}

// NewAdminServiceClient returns a client for the AdminService at baseURL.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &adminServiceClient{
		listUsers:             connect.NewClient[api.ListUsersRequest, api.ListUsersResponse](httpClient, baseURL+AdminServiceListUsersProcedure, opts...),
		banUser:               connect.NewClient[api.BanUserRequest, api.AccountResponse](httpClient, baseURL+AdminServiceBanUserProcedure, opts...),
		unbanUser:             connect.NewClient[api.UserRequest, api.AccountResponse](httpClient, baseURL+AdminServiceUnbanUserProcedure, opts...),
		deleteUser:            connect.NewClient[api.UserRequest, api.Empty](httpClient, baseURL+AdminServiceDeleteUserProcedure, opts...),
		listReports:           connect.NewClient[api.ListReportsRequest, api.ListReportsResponse](httpClient, baseURL+AdminServiceListReportsProcedure, opts...),
		removeReportedComment: connect.NewClient[api.ReportRequest, api.Empty](httpClient, baseURL+AdminServiceRemoveReportedCommentProcedure, opts...),
		dismissReport:         connect.NewClient[api.ReportRequest, api.Empty](httpClient, baseURL+AdminServiceDismissReportProcedure, opts...),
		listPlaces:            connect.NewClient[api.ListPlacesRequest, api.ListPlacesResponse](httpClient, baseURL+AdminServiceListPlacesProcedure, opts...),
		deletePlace:           connect.NewClient[api.DeletePlaceRequest, api.Empty](httpClient, baseURL+AdminServiceDeletePlaceProcedure, opts...),
		repairVisitIndex:      connect.NewClient[api.RepairVisitIndexRequest, api.Empty](httpClient, baseURL+AdminServiceRepairVisitIndexProcedure, opts...),
		reconcileTeams:        connect.NewClient[api.ReconcileTeamsRequest, api.ReconcileTeamsResponse](httpClient, baseURL+AdminServiceReconcileTeamsProcedure, opts...),
	}
}

type adminServiceClient struct {
	listUsers             *connect.Client[api.ListUsersRequest, api.ListUsersResponse]
	banUser               *connect.Client[api.BanUserRequest, api.AccountResponse]
	unbanUser             *connect.Client[api.UserRequest, api.AccountResponse]
	deleteUser            *connect.Client[api.UserRequest, api.Empty]
	listReports           *connect.Client[api.ListReportsRequest, api.ListReportsResponse]
	removeReportedComment *connect.Client[api.ReportRequest, api.Empty]
	dismissReport         *connect.Client[api.ReportRequest, api.Empty]
	listPlaces            *connect.Client[api.ListPlacesRequest, api.ListPlacesResponse]
	deletePlace           *connect.Client[api.DeletePlaceRequest, api.Empty]
	repairVisitIndex      *connect.Client[api.RepairVisitIndexRequest, api.Empty]
	reconcileTeams        *connect.Client[api.ReconcileTeamsRequest, api.ReconcileTeamsResponse]
}

func (c *adminServiceClient) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *adminServiceClient) BanUser(ctx context.Context, req *connect.Request[api.BanUserRequest]) (*connect.Response[api.AccountResponse], error) {
	return c.banUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) UnbanUser(ctx context.Context, req *connect.Request[api.UserRequest]) (*connect.Response[api.AccountResponse], error) {
	return c.unbanUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteUser(ctx context.Context, req *connect.Request[api.UserRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteUser.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListReports(ctx context.Context, req *connect.Request[api.ListReportsRequest]) (*connect.Response[api.ListReportsResponse], error) {
	return c.listReports.CallUnary(ctx, req)
}

func (c *adminServiceClient) RemoveReportedComment(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error) {
	return c.removeReportedComment.CallUnary(ctx, req)
}

func (c *adminServiceClient) DismissReport(ctx context.Context, req *connect.Request[api.ReportRequest]) (*connect.Response[api.Empty], error) {
	return c.dismissReport.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListPlaces(ctx context.Context, req *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error) {
	return c.listPlaces.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeletePlace(ctx context.Context, req *connect.Request[api.DeletePlaceRequest]) (*connect.Response[api.Empty], error) {
	return c.deletePlace.CallUnary(ctx, req)
}

func (c *adminServiceClient) RepairVisitIndex(ctx context.Context, req *connect.Request[api.RepairVisitIndexRequest]) (*connect.Response[api.Empty], error) {
	return c.repairVisitIndex.CallUnary(ctx, req)
}

func (c *adminServiceClient) ReconcileTeams(ctx context.Context, req *connect.Request[api.ReconcileTeamsRequest]) (*connect.Response[api.ReconcileTeamsResponse], error) {
	return c.reconcileTeams.CallUnary(ctx, req)
}
