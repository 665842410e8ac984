package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
)

// NotificationServiceName is the fully-qualified name of the NotificationService.
const NotificationServiceName = "camptrack.v1.NotificationService"

// Procedure paths of the NotificationService.
const (
	NotificationServiceListNotificationsProcedure  = "/" + NotificationServiceName + "/ListNotifications"
	NotificationServiceAcceptNotificationProcedure = "/" + NotificationServiceName + "/AcceptNotification"
	NotificationServiceDeleteNotificationProcedure = "/" + NotificationServiceName + "/DeleteNotification"
	NotificationServiceMarkSeenProcedure           = "/" + NotificationServiceName + "/MarkSeen"
)

// NotificationService lists and resolves the caller's notifications.
type NotificationService interface {
	ListNotifications(context.Context, *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error)
	AcceptNotification(context.Context, *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error)
	DeleteNotification(context.Context, *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error)
	MarkSeen(context.Context, *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error)
}

// NewNotificationServiceHandler builds an HTTP handler for svc and returns the path to
// mount it on.
func NewNotificationServiceHandler(svc NotificationService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return serve(NotificationServiceName,
		unary(NotificationServiceListNotificationsProcedure, svc.ListNotifications, opts),
		unary(NotificationServiceAcceptNotificationProcedure, svc.AcceptNotification, opts),
		unary(NotificationServiceDeleteNotificationProcedure, svc.DeleteNotification, opts),
		unary(NotificationServiceMarkSeenProcedure, svc.MarkSeen, opts),
	)
}

// NewNotificationServiceClient returns a client for the NotificationService at baseURL.
func NewNotificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) NotificationService {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &notificationServiceClient{
		listNotifications:  connect.NewClient[api.ListNotificationsRequest, api.ListNotificationsResponse](httpClient, baseURL+NotificationServiceListNotificationsProcedure, opts...),
		acceptNotification: connect.NewClient[api.NotificationRequest, api.Empty](httpClient, baseURL+NotificationServiceAcceptNotificationProcedure, opts...),
		deleteNotification: connect.NewClient[api.NotificationRequest, api.Empty](httpClient, baseURL+NotificationServiceDeleteNotificationProcedure, opts...),
		markSeen:           connect.NewClient[api.NotificationRequest, api.Empty](httpClient, baseURL+NotificationServiceMarkSeenProcedure, opts...),
	}
}

type notificationServiceClient struct {
	listNotifications  *connect.Client[api.ListNotificationsRequest, api.ListNotificationsResponse]
	acceptNotification *connect.Client[api.NotificationRequest, api.Empty]
	deleteNotification *connect.Client[api.NotificationRequest, api.Empty]
	markSeen           *connect.Client[api.NotificationRequest, api.Empty]
}

func (c *notificationServiceClient) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

func (c *notificationServiceClient) AcceptNotification(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	return c.acceptNotification.CallUnary(ctx, req)
}

func (c *notificationServiceClient) DeleteNotification(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	return c.deleteNotification.CallUnary(ctx, req)
}

func (c *notificationServiceClient) MarkSeen(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	return c.markSeen.CallUnary(ctx, req)
}
