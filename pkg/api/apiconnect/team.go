package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// TeamServiceName is the fully-qualified name of the TeamService.
const TeamServiceName = "camptrack.v1.TeamService"

// Procedure paths of the TeamService.
const (
	TeamServiceCreateTeamProcedure   = "/" + TeamServiceName + "/CreateTeam"
	TeamServiceGetTeamProcedure      = "/" + TeamServiceName + "/GetTeam"
	TeamServiceListMyTeamsProcedure  = "/" + TeamServiceName + "/ListMyTeams"
	TeamServiceListMembersProcedure  = "/" + TeamServiceName + "/ListMembers"
	TeamServiceInviteProcedure       = "/" + TeamServiceName + "/Invite"
	TeamServiceListRequestsProcedure = "/" + TeamServiceName + "/ListRequests"
	TeamServiceAcceptInviteProcedure = "/" + TeamServiceName + "/AcceptInvite"
	TeamServiceRejectInviteProcedure = "/" + TeamServiceName + "/RejectInvite"
	TeamServiceRemoveMemberProcedure = "/" + TeamServiceName + "/RemoveMember"
	TeamServiceDeleteTeamProcedure   = "/" + TeamServiceName + "/DeleteTeam"
	TeamServiceRenameTeamProcedure   = "/" + TeamServiceName + "/RenameTeam"
	TeamServiceUpdateLogoProcedure   = "/" + TeamServiceName + "/UpdateLogo"
	TeamServiceAddMemberProcedure    = "/" + TeamServiceName + "/AddMember"
)

// TeamService manages teams, invitations and membership.
type TeamService interface {
	CreateTeam(context.Context, *connect.Request[api.CreateTeamRequest]) (*connect.Response[api.TeamResponse], error)
	GetTeam(context.Context, *connect.Request[api.GetTeamRequest]) (*connect.Response[api.TeamSnapshotResponse], error)
	ListMyTeams(context.Context, *connect.Request[api.ListMyTeamsRequest]) (*connect.Response[api.ListTeamsResponse], error)
	ListMembers(context.Context, *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error)
	Invite(context.Context, *connect.Request[api.InviteRequest]) (*connect.Response[api.InviteResponse], error)
	ListRequests(context.Context, *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error)
	AcceptInvite(context.Context, *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.TeamSnapshotResponse], error)
	RejectInvite(context.Context, *connect.Request[api.RejectInviteRequest]) (*connect.Response[api.Empty], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
	DeleteTeam(context.Context, *connect.Request[api.DeleteTeamRequest]) (*connect.Response[api.Empty], error)
	RenameTeam(context.Context, *connect.Request[api.RenameTeamRequest]) (*connect.Response[api.TeamResponse], error)
	UpdateLogo(context.Context, *connect.Request[api.UpdateLogoRequest]) (*connect.Response[api.TeamResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MembersResponse], error)
}

// NewTeamServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewTeamServiceHandler(svc TeamService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(TeamServiceName,
		unary(TeamServiceCreateTeamProcedure, svc.CreateTeam, opts),
		unary(TeamServiceGetTeamProcedure, svc.GetTeam, opts),
		unary(TeamServiceListMyTeamsProcedure, svc.ListMyTeams, opts),
		unary(TeamServiceListMembersProcedure, svc.ListMembers, opts),
		unary(TeamServiceInviteProcedure, svc.Invite, opts),
		unary(TeamServiceListRequestsProcedure, svc.ListRequests, opts),
		unary(TeamServiceAcceptInviteProcedure, svc.AcceptInvite, opts),
		unary(TeamServiceRejectInviteProcedure, svc.RejectInvite, opts),
		unary(TeamServiceRemoveMemberProcedure, svc.RemoveMember, opts),
		unary(TeamServiceDeleteTeamProcedure, svc.DeleteTeam, opts),
		unary(TeamServiceRenameTeamProcedure, svc.RenameTeam, opts),
		unary(TeamServiceUpdateLogoProcedure, svc.UpdateLogo, opts),
		unary(TeamServiceAddMemberProcedure, svc.AddMember, opts),
	)
}

// NewTeamServiceClient returns a client for the TeamService at baseURL.
func NewTeamServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TeamService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &teamServiceClient{
		createTeam:   connect.NewClient[api.CreateTeamRequest, api.TeamResponse](httpClient, baseURL+TeamServiceCreateTeamProcedure, opts...),
		getTeam:      connect.NewClient[api.GetTeamRequest, api.TeamSnapshotResponse](httpClient, baseURL+TeamServiceGetTeamProcedure, opts...),
		listMyTeams:  connect.NewClient[api.ListMyTeamsRequest, api.ListTeamsResponse](httpClient, baseURL+TeamServiceListMyTeamsProcedure, opts...),
		listMembers:  connect.NewClient[api.ListMembersRequest, api.ListMembersResponse](httpClient, baseURL+TeamServiceListMembersProcedure, opts...),
		invite:       connect.NewClient[api.InviteRequest, api.InviteResponse](httpClient, baseURL+TeamServiceInviteProcedure, opts...),
		listRequests: connect.NewClient[api.ListRequestsRequest, api.ListRequestsResponse](httpClient, baseURL+TeamServiceListRequestsProcedure, opts...),
		acceptInvite: connect.NewClient[api.AcceptInviteRequest, api.TeamSnapshotResponse](httpClient, baseURL+TeamServiceAcceptInviteProcedure, opts...),
		rejectInvite: connect.NewClient[api.RejectInviteRequest, api.Empty](httpClient, baseURL+TeamServiceRejectInviteProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+TeamServiceRemoveMemberProcedure, opts...),
		deleteTeam:   connect.NewClient[api.DeleteTeamRequest, api.Empty](httpClient, baseURL+TeamServiceDeleteTeamProcedure, opts...),
		renameTeam:   connect.NewClient[api.RenameTeamRequest, api.TeamResponse](httpClient, baseURL+TeamServiceRenameTeamProcedure, opts...),
		updateLogo:   connect.NewClient[api.UpdateLogoRequest, api.TeamResponse](httpClient, baseURL+TeamServiceUpdateLogoProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.MembersResponse](httpClient, baseURL+TeamServiceAddMemberProcedure, opts...),
	}
}

type teamServiceClient struct {
	createTeam   *connect.Client[api.CreateTeamRequest, api.TeamResponse]
	getTeam      *connect.Client[api.GetTeamRequest, api.TeamSnapshotResponse]
	listMyTeams  *connect.Client[api.ListMyTeamsRequest, api.ListTeamsResponse]
	listMembers  *connect.Client[api.ListMembersRequest, api.ListMembersResponse]
	invite       *connect.Client[api.InviteRequest, api.InviteResponse]
	listRequests *connect.Client[api.ListRequestsRequest, api.ListRequestsResponse]
	acceptInvite *connect.Client[api.AcceptInviteRequest, api.TeamSnapshotResponse]
	rejectInvite *connect.Client[api.RejectInviteRequest, api.Empty]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
	deleteTeam   *connect.Client[api.DeleteTeamRequest, api.Empty]
	renameTeam   *connect.Client[api.RenameTeamRequest, api.TeamResponse]
	updateLogo   *connect.Client[api.UpdateLogoRequest, api.TeamResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.MembersResponse]
}

func (c *teamServiceClient) CreateTeam(ctx context.Context, req *connect.Request[api.CreateTeamRequest]) (*connect.Response[api.TeamResponse], error) {
	return c.createTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) GetTeam(ctx context.Context, req *connect.Request[api.GetTeamRequest]) (*connect.Response[api.TeamSnapshotResponse], error) {
	return c.getTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) ListMyTeams(ctx context.Context, req *connect.Request[api.ListMyTeamsRequest]) (*connect.Response[api.ListTeamsResponse], error) {
	return c.listMyTeams.CallUnary(ctx, req)
}

func (c *teamServiceClient) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *teamServiceClient) Invite(ctx context.Context, req *connect.Request[api.InviteRequest]) (*connect.Response[api.InviteResponse], error) {
	return c.invite.CallUnary(ctx, req)
}

func (c *teamServiceClient) ListRequests(ctx context.Context, req *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error) {
	return c.listRequests.CallUnary(ctx, req)
}

func (c *teamServiceClient) AcceptInvite(ctx context.Context, req *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.TeamSnapshotResponse], error) {
	return c.acceptInvite.CallUnary(ctx, req)
}

func (c *teamServiceClient) RejectInvite(ctx context.Context, req *connect.Request[api.RejectInviteRequest]) (*connect.Response[api.Empty], error) {
	return c.rejectInvite.CallUnary(ctx, req)
}

func (c *teamServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *teamServiceClient) DeleteTeam(ctx context.Context, req *connect.Request[api.DeleteTeamRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) RenameTeam(ctx context.Context, req *connect.Request[api.RenameTeamRequest]) (*connect.Response[api.TeamResponse], error) {
	return c.renameTeam.CallUnary(ctx, req)
}

func (c *teamServiceClient) UpdateLogo(ctx context.Context, req *connect.Request[api.UpdateLogoRequest]) (*connect.Response[api.TeamResponse], error) {
	return c.updateLogo.CallUnary(ctx, req)
}

func (c *teamServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MembersResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}
