package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// FavoriteServiceName is the fully-qualified name of the FavoriteService.
const FavoriteServiceName = "camptrack.v1.FavoriteService"

// Procedure paths of the FavoriteService.
const (
	FavoriteServiceSetFavoriteProcedure   = "/" + FavoriteServiceName + "/SetFavorite"
	FavoriteServiceListFavoritesProcedure = "/" + FavoriteServiceName + "/ListFavorites"
)

// FavoriteService manages the caller's favorite places.
type FavoriteService interface {
	SetFavorite(context.Context, *connect.Request[api.SetFavoriteRequest]) (*connect.Response[api.Empty], error)
	ListFavorites(context.Context, *connect.Request[api.ListFavoritesRequest]) (*connect.Response[api.ListFavoritesResponse], error)
}

// NewFavoriteServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewFavoriteServiceHandler(svc FavoriteService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(FavoriteServiceName,
		unary(FavoriteServiceSetFavoriteProcedure, svc.SetFavorite, opts),
		unary(FavoriteServiceListFavoritesProcedure, svc.ListFavorites, opts),
	)
}

// NewFavoriteServiceClient returns a client for the FavoriteService at baseURL.
func NewFavoriteServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FavoriteService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &favoriteServiceClient{
		setFavorite:   connect.NewClient[api.SetFavoriteRequest, api.Empty](httpClient, baseURL+FavoriteServiceSetFavoriteProcedure, opts...),
		listFavorites: connect.NewClient[api.ListFavoritesRequest, api.ListFavoritesResponse](httpClient, baseURL+FavoriteServiceListFavoritesProcedure, opts...),
	}
}

type favoriteServiceClient struct {
	setFavorite   *connect.Client[api.SetFavoriteRequest, api.Empty]
	listFavorites *connect.Client[api.ListFavoritesRequest, api.ListFavoritesResponse]
}

func (c *favoriteServiceClient) SetFavorite(ctx context.Context, req *connect.Request[api.SetFavoriteRequest]) (*connect.Response[api.Empty], error) {
	return c.setFavorite.CallUnary(ctx, req)
}

func (c *favoriteServiceClient) ListFavorites(ctx context.Context, req *connect.Request[api.ListFavoritesRequest]) (*connect.Response[api.ListFavoritesResponse], error) {
	return c.listFavorites.CallUnary(ctx, req)
}
