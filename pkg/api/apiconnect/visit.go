package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// VisitServiceName is the fully-qualified name of the VisitService.
const VisitServiceName = "camptrack.v1.VisitService"

// Procedure paths of the VisitService.
const (
	VisitServiceUpsertVisitProcedure     = "/" + VisitServiceName + "/UpsertVisit"
	VisitServiceListVisitedProcedure     = "/" + VisitServiceName + "/ListVisited"
	VisitServiceGetVisitDetailsProcedure = "/" + VisitServiceName + "/GetVisitDetails"
)

// VisitService records shared visits.
type VisitService interface {
	UpsertVisit(context.Context, *connect.Request[api.UpsertVisitRequest]) (*connect.Response[api.UpsertVisitResponse], error)
	ListVisited(context.Context, *connect.Request[api.ListVisitedRequest]) (*connect.Response[api.ListVisitedResponse], error)
	GetVisitDetails(context.Context, *connect.Request[api.GetVisitDetailsRequest]) (*connect.Response[api.GetVisitDetailsResponse], error)
}

// NewVisitServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewVisitServiceHandler(svc VisitService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(VisitServiceName,
		unary(VisitServiceUpsertVisitProcedure, svc.UpsertVisit, opts),
		unary(VisitServiceListVisitedProcedure, svc.ListVisited, opts),
		unary(VisitServiceGetVisitDetailsProcedure, svc.GetVisitDetails, opts),
	)
}

// NewVisitServiceClient returns a client for the VisitService at baseURL.
func NewVisitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) VisitService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &visitServiceClient{
		upsertVisit:     connect.NewClient[api.UpsertVisitRequest, api.UpsertVisitResponse](httpClient, baseURL+VisitServiceUpsertVisitProcedure, opts...),
		listVisited:     connect.NewClient[api.ListVisitedRequest, api.ListVisitedResponse](httpClient, baseURL+VisitServiceListVisitedProcedure, opts...),
		getVisitDetails: connect.NewClient[api.GetVisitDetailsRequest, api.GetVisitDetailsResponse](httpClient, baseURL+VisitServiceGetVisitDetailsProcedure, opts...),
	}
}

type visitServiceClient struct {
	upsertVisit     *connect.Client[api.UpsertVisitRequest, api.UpsertVisitResponse]
	listVisited     *connect.Client[api.ListVisitedRequest, api.ListVisitedResponse]
	getVisitDetails *connect.Client[api.GetVisitDetailsRequest, api.GetVisitDetailsResponse]
}

func (c *visitServiceClient) UpsertVisit(ctx context.Context, req *connect.Request[api.UpsertVisitRequest]) (*connect.Response[api.UpsertVisitResponse], error) {
	return c.upsertVisit.CallUnary(ctx, req)
}

func (c *visitServiceClient) ListVisited(ctx context.Context, req *connect.Request[api.ListVisitedRequest]) (*connect.Response[api.ListVisitedResponse], error) {
	return c.listVisited.CallUnary(ctx, req)
}

func (c *visitServiceClient) GetVisitDetails(ctx context.Context, req *connect.Request[api.GetVisitDetailsRequest]) (*connect.Response[api.GetVisitDetailsResponse], error) {
	return c.getVisitDetails.CallUnary(ctx, req)
}
