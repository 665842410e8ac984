package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api"
	"github.com/berkaygencdogan/camp-track-backend/pkg/api/apiconnect"
)

var _ apiconnect.NotificationService = (*NotificationService)(nil)

// NotificationService implements the Connect NotificationService.
type NotificationService struct {
	notifications *ledger.Notifications
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications *ledger.Notifications) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// ListNotifications returns the caller's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	notifs, err := s.notifications.ListNotifications(ctx, uid)
	if err != nil {
		return nil, failed(ctx, "ListNotifications", err)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: notifs}), nil
}

// AcceptNotification accepts a team invite notification. A client that saw
// the call fail retries it; NotFound means an earlier attempt finished.
func (s *NotificationService) AcceptNotification(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AcceptNotification request received", "notification_id", req.Msg.NotificationID)

	if err := s.notifications.AcceptNotification(ctx, req.Msg.NotificationID, uid); err != nil {
		return nil, failed(ctx, "AcceptNotification", err, "notification_id", req.Msg.NotificationID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// DeleteNotification deletes one of the caller's notifications.
func (s *NotificationService) DeleteNotification(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.DeleteNotification(ctx, req.Msg.NotificationID, uid); err != nil {
		return nil, failed(ctx, "DeleteNotification", err, "notification_id", req.Msg.NotificationID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// MarkSeen flags one of the caller's notifications as seen.
func (s *NotificationService) MarkSeen(ctx context.Context, req *connect.Request[api.NotificationRequest]) (*connect.Response[api.Empty], error) {
	uid, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.MarkSeen(ctx, req.Msg.NotificationID, uid); err != nil {
		return nil, failed(ctx, "MarkSeen", err, "notification_id", req.Msg.NotificationID)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
