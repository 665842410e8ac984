package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// BackpackServiceName is the fully-qualified name of the BackpackService.
const BackpackServiceName = "camptrack.v1.BackpackService"

// Procedure paths of the BackpackService.
const (
	BackpackServiceGetBackpackProcedure = "/" + BackpackServiceName + "/GetBackpack"
	BackpackServiceAddItemProcedure     = "/" + BackpackServiceName + "/AddItem"
	BackpackServiceRemoveItemProcedure  = "/" + BackpackServiceName + "/RemoveItem"
)

// BackpackService manages the caller's backpack.
type BackpackService interface {
	GetBackpack(context.Context, *connect.Request[api.GetBackpackRequest]) (*connect.Response[api.BackpackResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.BackpackResponse], error)
	RemoveItem(context.Context, *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BackpackResponse], error)
}

// NewBackpackServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewBackpackServiceHandler(svc BackpackService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(BackpackServiceName,
		unary(BackpackServiceGetBackpackProcedure, svc.GetBackpack, opts),
		unary(BackpackServiceAddItemProcedure, svc.AddItem, opts),
		unary(BackpackServiceRemoveItemProcedure, svc.RemoveItem, opts),
	)
}

// NewBackpackServiceClient returns a client for the BackpackService at baseURL.
func NewBackpackServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BackpackService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &backpackServiceClient{
		getBackpack: connect.NewClient[api.GetBackpackRequest, api.BackpackResponse](httpClient, baseURL+BackpackServiceGetBackpackProcedure, opts...),
		addItem:     connect.NewClient[api.AddItemRequest, api.BackpackResponse](httpClient, baseURL+BackpackServiceAddItemProcedure, opts...),
		removeItem:  connect.NewClient[api.RemoveItemRequest, api.BackpackResponse](httpClient, baseURL+BackpackServiceRemoveItemProcedure, opts...),
	}
}

type backpackServiceClient struct {
	getBackpack *connect.Client[api.GetBackpackRequest, api.BackpackResponse]
	addItem     *connect.Client[api.AddItemRequest, api.BackpackResponse]
	removeItem  *connect.Client[api.RemoveItemRequest, api.BackpackResponse]
}

func (c *backpackServiceClient) GetBackpack(ctx context.Context, req *connect.Request[api.GetBackpackRequest]) (*connect.Response[api.BackpackResponse], error) {
	return c.getBackpack.CallUnary(ctx, req)
}

func (c *backpackServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.BackpackResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *backpackServiceClient) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.BackpackResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}
