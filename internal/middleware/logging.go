package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/berkaygencdogan/camp-track-backend/pkg/logging"
)

// LoggingInterceptor logs every RPC with its procedure, caller and duration.
// Handlers downstream get a logger tagged with both through the context.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			userID := GetUserID(ctx) // empty if pre-auth

			logger := slog.Default().With("procedure", procedure)
			if userID != "" {
				logger = logger.With("user_id", userID)
			}
			resp, err := next(logging.WithLogger(ctx, logger), req)

			duration := time.Since(start).Milliseconds()
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
					logger.Warn("RPC error",
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"duration_ms", duration,
					)
				} else {
					logger.Error("RPC error", "error", err, "duration_ms", duration)
				}
			} else {
				logger.Info("RPC ok", "duration_ms", duration)
			}

			return resp, err
		}
	}
}
