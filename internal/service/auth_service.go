package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/auth"
	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.AuthService = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         *ledger.Directory
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users *ledger.Directory, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and signs a token for it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Password)
	if err != nil {
		return nil, failed(ctx, "Register", err, "email", req.Msg.Email)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{Account: api.NewAccount(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, failed(ctx, "Login", err, "email", req.Msg.Email)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return connect.NewResponse(&api.AuthResponse{Account: api.NewAccount(user), Token: token}), nil
}

// Me returns the authenticated user's account.
func (s *AuthService) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.AccountResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "Me", err, "user_id", uid)
	}
	return connect.NewResponse(&api.AccountResponse{Account: api.NewAccount(user)}), nil
}

// UpdateProfile changes the caller's name, nickname or avatar.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.AccountResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("UpdateProfile request", "user_id", uid)

	user, err := s.users.UpdateProfile(ctx, uid, ledger.ProfileUpdate{
		Name:     req.Msg.Name,
		Nickname: req.Msg.Nickname,
		Avatar:   req.Msg.Avatar,
	})
	if err != nil {
		return nil, failed(ctx, "UpdateProfile", err, "user_id", uid)
	}

	s.logger.Info("Profile updated", "user_id", uid)
	return connect.NewResponse(&api.AccountResponse{Account: api.NewAccount(user)}), nil
}
