package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/internal/auth"
	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/internal/middleware"
	"github.com/berkaygencdogan/camp-track-backend/pkg/logging"
)

// connectError maps ledger and auth errors onto Connect codes.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	switch ledger.KindOf(err) {
	case ledger.KindValidation:
		return connect.NewError(connect.CodeInvalidArgument, err)
	case ledger.KindNotFound:
		return connect.NewError(connect.CodeNotFound, err)
	case ledger.KindForbidden:
		return connect.NewError(connect.CodePermissionDenied, err)
	case ledger.KindConflict:
		return connect.NewError(connect.CodeAborted, err)
	case ledger.KindUnavailable:
		return connect.NewError(connect.CodeUnavailable, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// failed logs a failed operation and returns its Connect error. Caller
// mistakes are logged at warn level, everything else at error.
func failed(ctx context.Context, op string, err error, args ...any) error {
	connectErr := connectError(err)
	args = append(args, "code", connectErr.Code(), "error", err)

	logger := logging.FromContext(ctx)
	if connectErr.Code() == connect.CodeInternal || connectErr.Code() == connect.CodeUnavailable {
		logger.Error(op+" failed", args...)
	} else {
		logger.Warn(op+" failed", args...)
	}
	return connectErr
}

// callerID returns the authenticated user ID put in the context by the auth
// interceptor.
func callerID(ctx context.Context) (string, error) {
	uid := middleware.GetUserID(ctx)
	if uid == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return uid, nil
}
