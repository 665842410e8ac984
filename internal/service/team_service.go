package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/internal/models"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.TeamService = (*TeamService)(nil)

// TeamService implements the Connect TeamService.
type TeamService struct {
	membership    *ledger.Membership
	notifications *ledger.Notifications
}

// NewTeamService creates a TeamService over the membership ledger. Invites
// are announced through notifications.
func NewTeamService(membership *ledger.Membership, notifications *ledger.Notifications) *TeamService {
	return &TeamService{membership: membership, notifications: notifications}
}

func logoFrom(data []byte, contentType string) *ledger.Logo {
	if len(data) == 0 {
		return nil
	}
	return &ledger.Logo{Data: data, ContentType: contentType}
}

// CreateTeam creates a team owned by the caller.
func (s *TeamService) CreateTeam(ctx context.Context, req *connect.Request[api.CreateTeamRequest]) (*connect.Response[api.TeamResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateTeam request received", "name", req.Msg.Name, "has_logo", len(req.Msg.Logo) > 0)

	team, err := s.membership.CreateTeam(ctx, req.Msg.Name, uid, logoFrom(req.Msg.Logo, req.Msg.LogoContentType))
	if err != nil {
		return nil, failed(ctx, "CreateTeam", err)
	}

	slog.Info("Team created", "team_id", team.ID)
	return connect.NewResponse(&api.TeamResponse{Team: team}), nil
}

// GetTeam returns a team with its members' profiles.
func (s *TeamService) GetTeam(ctx context.Context, req *connect.Request[api.GetTeamRequest]) (*connect.Response[api.TeamSnapshotResponse], error) {
	slog.Info("GetTeam request received", "team_id", req.Msg.TeamID)

	snap, err := s.membership.GetTeam(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, failed(ctx, "GetTeam", err, "team_id", req.Msg.TeamID)
	}
	return connect.NewResponse(&api.TeamSnapshotResponse{Team: snap}), nil
}

// ListMyTeams returns the teams the caller belongs to.
func (s *TeamService) ListMyTeams(ctx context.Context, req *connect.Request[api.ListMyTeamsRequest]) (*connect.Response[api.ListTeamsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	teams, err := s.membership.ListMyTeams(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListMyTeams", err)
	}

	slog.Info("ListMyTeams successful", "count", len(teams))
	return connect.NewResponse(&api.ListTeamsResponse{Teams: teams}), nil
}

// ListMembers returns the profiles of a team's members.
func (s *TeamService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	members, err := s.membership.ListMembers(ctx, req.Msg.TeamID)
	if err != nil {
		return nil, failed(ctx, "ListMembers", err, "team_id", req.Msg.TeamID)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: members}), nil
}

// Invite creates a pending request and sends the invitee a team_invite
// notification. Repeating an invite that is still pending returns the same
// request and sends nothing.
func (s *TeamService) Invite(ctx context.Context, req *connect.Request[api.InviteRequest]) (*connect.Response[api.InviteResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("Invite request received", "team_id", req.Msg.TeamID, "to_user_id", req.Msg.ToUserID)

	wasPending, err := s.pendingInvite(ctx, req.Msg.TeamID, req.Msg.ToUserID)
	if err != nil {
		return nil, failed(ctx, "Invite", err, "team_id", req.Msg.TeamID)
	}

	request, err := s.membership.Invite(ctx, uid, req.Msg.ToUserID, req.Msg.TeamID)
	if err != nil {
		return nil, failed(ctx, "Invite", err, "team_id", req.Msg.TeamID)
	}
	resp := &api.InviteResponse{Request: request}
	if wasPending {
		return connect.NewResponse(resp), nil
	}

	team, err := s.membership.GetTeam(ctx, request.TeamID)
	if err != nil {
		return nil, failed(ctx, "Invite", err, "team_id", request.TeamID)
	}
	resp.NotificationID, err = s.notifications.Notify(ctx, request.ToID, uid, models.NotificationTeamInvite, ledger.Payload{
		TeamID:    team.ID,
		TeamName:  team.Name,
		TeamLogo:  team.Logo,
		RequestID: request.ID,
	})
	if err != nil {
		// The request stands; the invitee still finds it through ListRequests.
		slog.Warn("Invite notification failed", "request_id", request.ID, "error", err)
	}

	slog.Info("Invite successful", "request_id", request.ID, "notification_id", resp.NotificationID)
	return connect.NewResponse(resp), nil
}

func (s *TeamService) pendingInvite(ctx context.Context, teamID, toUID string) (bool, error) {
	if toUID == "" {
		return false, nil
	}
	pending, err := s.membership.ListRequests(ctx, toUID)
	if err != nil {
		return false, err
	}
	for _, r := range pending {
		if r.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

// ListRequests returns the pending invitations addressed to the caller.
func (s *TeamService) ListRequests(ctx context.Context, req *connect.Request[api.ListRequestsRequest]) (*connect.Response[api.ListRequestsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.membership.ListRequests(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListRequests", err)
	}
	return connect.NewResponse(&api.ListRequestsResponse{Requests: requests}), nil
}

// AcceptInvite adds the caller to the inviting team.
func (s *TeamService) AcceptInvite(ctx context.Context, req *connect.Request[api.AcceptInviteRequest]) (*connect.Response[api.TeamSnapshotResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AcceptInvite request received", "request_id", req.Msg.RequestID)

	snap, err := s.membership.AcceptInvite(ctx, req.Msg.RequestID, uid)
	if err != nil {
		return nil, failed(ctx, "AcceptInvite", err, "request_id", req.Msg.RequestID)
	}

	slog.Info("AcceptInvite successful", "team_id", snap.ID)
	return connect.NewResponse(&api.TeamSnapshotResponse{Team: snap}), nil
}

// RejectInvite declines an invitation addressed to the caller.
func (s *TeamService) RejectInvite(ctx context.Context, req *connect.Request[api.RejectInviteRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RejectInvite request received", "request_id", req.Msg.RequestID)

	if err := s.membership.RejectInvite(ctx, req.Msg.RequestID, uid); err != nil {
		return nil, failed(ctx, "RejectInvite", err, "request_id", req.Msg.RequestID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RemoveMember removes a member, or the caller when leaving.
func (s *TeamService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("RemoveMember request received", "team_id", req.Msg.TeamID, "target_user_id", req.Msg.UserID)

	removal, err := s.membership.RemoveMember(ctx, req.Msg.TeamID, req.Msg.UserID, uid)
	if err != nil {
		return nil, failed(ctx, "RemoveMember", err, "team_id", req.Msg.TeamID)
	}

	slog.Info("RemoveMember successful", "team_id", req.Msg.TeamID, "team_deleted", removal.TeamDeleted)
	return connect.NewResponse(&api.RemoveMemberResponse{
		Members:     removal.Members,
		TeamDeleted: removal.TeamDeleted,
	}), nil
}

// DeleteTeam deletes a team owned by the caller.
func (s *TeamService) DeleteTeam(ctx context.Context, req *connect.Request[api.DeleteTeamRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteTeam request received", "team_id", req.Msg.TeamID)

	if err := s.membership.DeleteTeam(ctx, req.Msg.TeamID, uid); err != nil {
		return nil, failed(ctx, "DeleteTeam", err, "team_id", req.Msg.TeamID)
	}

	slog.Info("Team deleted", "team_id", req.Msg.TeamID)
	return connect.NewResponse(&api.Empty{}), nil
}

// RenameTeam renames a team owned by the caller.
func (s *TeamService) RenameTeam(ctx context.Context, req *connect.Request[api.RenameTeamRequest]) (*connect.Response[api.TeamResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.membership.RenameTeam(ctx, req.Msg.TeamID, uid, req.Msg.Name)
	if err != nil {
		return nil, failed(ctx, "RenameTeam", err, "team_id", req.Msg.TeamID)
	}
	return connect.NewResponse(&api.TeamResponse{Team: team}), nil
}

// UpdateLogo replaces the logo of a team owned by the caller.
func (s *TeamService) UpdateLogo(ctx context.Context, req *connect.Request[api.UpdateLogoRequest]) (*connect.Response[api.TeamResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	team, err := s.membership.UpdateLogo(ctx, req.Msg.TeamID, uid, logoFrom(req.Msg.Logo, req.Msg.LogoContentType))
	if err != nil {
		return nil, failed(ctx, "UpdateLogo", err, "team_id", req.Msg.TeamID)
	}
	return connect.NewResponse(&api.TeamResponse{Team: team}), nil
}

// AddMember adds a user directly, without an invitation.
func (s *TeamService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MembersResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMember request received", "team_id", req.Msg.TeamID, "target_user_id", req.Msg.UserID)

	members, err := s.membership.AddMember(ctx, req.Msg.TeamID, req.Msg.UserID, uid)
	if err != nil {
		return nil, failed(ctx, "AddMember", err, "team_id", req.Msg.TeamID)
	}
	return connect.NewResponse(&api.MembersResponse{Members: members}), nil
}
