package service

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/auth"
	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/internal/middleware"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

// Services bundles every Connect service implementation.
type Services struct {
	Auth         *AuthService
	Team         *TeamService
	Place        *PlaceService
	Favorite     *FavoriteService
	Visit        *VisitService
	Notification *NotificationService
	Admin        *AdminService
	Backpack     *BackpackService
	Post         *PostService
}

// New builds the services over the ledgers.
func New(set *ledger.Set, authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *Services {
	return &Services{
		Auth:         NewAuthService(authenticator, jwtManager, set.Users, logger),
		Team:         NewTeamService(set.Membership, set.Notifications),
		Place:        NewPlaceService(set.Places),
		Favorite:     NewFavoriteService(set.Favorites),
		Visit:        NewVisitService(set.Visits),
		Notification: NewNotificationService(set.Notifications),
		Admin:        NewAdminService(set.Moderation, set.Membership, set.Visits),
		Backpack:     NewBackpackService(set.Backpacks),
		Post:         NewPostService(set.Posts),
	}
}

// Mount registers every service on mux. The auth service accepts anonymous
// calls; every other service requires a verified bearer token.
func (s *Services) Mount(mux *http.ServeMux, provider auth.IdentityProvider) {
	public := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.OptionalAuth(provider),
		middleware.LoggingInterceptor(),
	)
	private := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(provider),
		middleware.LoggingInterceptor(),
	)

	mux.Handle(apiconnect.NewAuthServiceHandler(s.Auth, public))
	mux.Handle(apiconnect.NewTeamServiceHandler(s.Team, private))
	mux.Handle(apiconnect.NewPlaceServiceHandler(s.Place, private))
	mux.Handle(apiconnect.NewFavoriteServiceHandler(s.Favorite, private))
	mux.Handle(apiconnect.NewVisitServiceHandler(s.Visit, private))
	mux.Handle(apiconnect.NewNotificationServiceHandler(s.Notification, private))
	mux.Handle(apiconnect.NewAdminServiceHandler(s.Admin, private))
	mux.Handle(apiconnect.NewBackpackServiceHandler(s.Backpack, private))
	mux.Handle(apiconnect.NewPostServiceHandler(s.Post, private))
}
