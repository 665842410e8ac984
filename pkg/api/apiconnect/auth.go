package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService.
const AuthServiceName = "camptrack.v1.AuthService"

// Procedure paths of the AuthService.
const (
	AuthServiceRegisterProcedure      = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure         = "/" + AuthServiceName + "/Login"
	AuthServiceMeProcedure            = "/" + AuthServiceName + "/Me"
	AuthServiceUpdateProfileProcedure = "/" + AuthServiceName + "/UpdateProfile"
)

// AuthService registers and authenticates users.
type AuthService interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	Me(context.Context, *connect.Request[api.MeRequest]) (*connect.Response[api.AccountResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.AccountResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewAuthServiceHandler(svc AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(AuthServiceName,
		unary(AuthServiceRegisterProcedure, svc.Register, opts),
		unary(AuthServiceLoginProcedure, svc.Login, opts),
		unary(AuthServiceMeProcedure, svc.Me, opts),
		unary(AuthServiceUpdateProfileProcedure, svc.UpdateProfile, opts),
	)
}

// NewAuthServiceClient returns a client for the AuthService at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &authServiceClient{
		register:      connect.NewClient[api.RegisterRequest, api.AuthResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:         connect.NewClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		me:            connect.NewClient[api.MeRequest, api.AccountResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.AccountResponse](httpClient, baseURL+AuthServiceUpdateProfileProcedure, opts...),
	}
}

type authServiceClient struct {
	register      *connect.Client[api.RegisterRequest, api.AuthResponse]
	login         *connect.Client[api.LoginRequest, api.AuthResponse]
	me            *connect.Client[api.MeRequest, api.AccountResponse]
	updateProfile *connect.Client[api.UpdateProfileRequest, api.AccountResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) Me(ctx context.Context, req *connect.Request[api.MeRequest]) (*connect.Response[api.AccountResponse], error) {
	return c.me.CallUnary(ctx, req)
}

func (c *authServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.AccountResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}
