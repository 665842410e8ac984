package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// PlaceServiceName is the fully-qualified name of the PlaceService.
const PlaceServiceName = "camptrack.v1.PlaceService"

// Procedure paths of the PlaceService.
const (
	PlaceServiceAddPlaceProcedure      = "/" + PlaceServiceName + "/AddPlace"
	PlaceServiceGetPlaceProcedure      = "/" + PlaceServiceName + "/GetPlace"
	PlaceServiceListPlacesProcedure    = "/" + PlaceServiceName + "/ListPlaces"
	PlaceServiceAddCommentProcedure    = "/" + PlaceServiceName + "/AddComment"
	PlaceServiceListCommentsProcedure  = "/" + PlaceServiceName + "/ListComments"
	PlaceServiceReportCommentProcedure = "/" + PlaceServiceName + "/ReportComment"
)

// PlaceService manages places and their comments.
type PlaceService interface {
	AddPlace(context.Context, *connect.Request[api.AddPlaceRequest]) (*connect.Response[api.PlaceResponse], error)
	GetPlace(context.Context, *connect.Request[api.GetPlaceRequest]) (*connect.Response[api.PlaceResponse], error)
	ListPlaces(context.Context, *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error)
	AddComment(context.Context, *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error)
	ListComments(context.Context, *connect.Request[api.ListCommentsRequest]) (*connect.Response[api.ListCommentsResponse], error)
	ReportComment(context.Context, *connect.Request[api.ReportCommentRequest]) (*connect.Response[api.ReportResponse], error)
}

// NewPlaceServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewPlaceServiceHandler(svc PlaceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(PlaceServiceName,
		unary(PlaceServiceAddPlaceProcedure, svc.AddPlace, opts),
		unary(PlaceServiceGetPlaceProcedure, svc.GetPlace, opts),
		unary(PlaceServiceListPlacesProcedure, svc.ListPlaces, opts),
		unary(PlaceServiceAddCommentProcedure, svc.AddComment, opts),
		unary(PlaceServiceListCommentsProcedure, svc.ListComments, opts),
		unary(PlaceServiceReportCommentProcedure, svc.ReportComment, opts),
	)
}

// NewPlaceServiceClient returns a client for the PlaceService at baseURL.
func NewPlaceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlaceService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &placeServiceClient{
		addPlace:      connect.NewClient[api.AddPlaceRequest, api.PlaceResponse](httpClient, baseURL+PlaceServiceAddPlaceProcedure, opts...),
		getPlace:      connect.NewClient[api.GetPlaceRequest, api.PlaceResponse](httpClient, baseURL+PlaceServiceGetPlaceProcedure, opts...),
		listPlaces:    connect.NewClient[api.ListPlacesRequest, api.ListPlacesResponse](httpClient, baseURL+PlaceServiceListPlacesProcedure, opts...),
		addComment:    connect.NewClient[api.AddCommentRequest, api.CommentResponse](httpClient, baseURL+PlaceServiceAddCommentProcedure, opts...),
		listComments:  connect.NewClient[api.ListCommentsRequest, api.ListCommentsResponse](httpClient, baseURL+PlaceServiceListCommentsProcedure, opts...),
		reportComment: connect.NewClient[api.ReportCommentRequest, api.ReportResponse](httpClient, baseURL+PlaceServiceReportCommentProcedure, opts...),
	}
}

type placeServiceClient struct {
	addPlace      *connect.Client[api.AddPlaceRequest, api.PlaceResponse]
	getPlace      *connect.Client[api.GetPlaceRequest, api.PlaceResponse]
	listPlaces    *connect.Client[api.ListPlacesRequest, api.ListPlacesResponse]
	addComment    *connect.Client[api.AddCommentRequest, api.CommentResponse]
	listComments  *connect.Client[api.ListCommentsRequest, api.ListCommentsResponse]
	reportComment *connect.Client[api.ReportCommentRequest, api.ReportResponse]
}

func (c *placeServiceClient) AddPlace(ctx context.Context, req *connect.Request[api.AddPlaceRequest]) (*connect.Response[api.PlaceResponse], error) {
	return c.addPlace.CallUnary(ctx, req)
}

func (c *placeServiceClient) GetPlace(ctx context.Context, req *connect.Request[api.GetPlaceRequest]) (*connect.Response[api.PlaceResponse], error) {
	return c.getPlace.CallUnary(ctx, req)
}

func (c *placeServiceClient) ListPlaces(ctx context.Context, req *connect.Request[api.ListPlacesRequest]) (*connect.Response[api.ListPlacesResponse], error) {
	return c.listPlaces.CallUnary(ctx, req)
}

func (c *placeServiceClient) AddComment(ctx context.Context, req *connect.Request[api.AddCommentRequest]) (*connect.Response[api.CommentResponse], error) {
	return c.addComment.CallUnary(ctx, req)
}

func (c *placeServiceClient) ListComments(ctx context.Context, req *connect.Request[api.ListCommentsRequest]) (*connect.Response[api.ListCommentsResponse], error) {
	return c.listComments.CallUnary(ctx, req)
}

func (c *placeServiceClient) ReportComment(ctx context.Context, req *connect.Request[api.ReportCommentRequest]) (*connect.Response[api.ReportResponse], error) {
	return c.reportComment.CallUnary(ctx, req)
}
