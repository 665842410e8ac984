package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/berkaygencdogan/camp-track-backend/internal/assets"
	"github.com/berkaygencdogan/camp-track-backend/internal/auth"
	"github.com/berkaygencdogan/camp-track-backend/internal/config"
	"github.com/berkaygencdogan/camp-track-backend/internal/jobs"
	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
	"github.com/berkaygencdogan/camp-track-backend/internal/service"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage/redis"
	"github.com/berkaygencdogan/camp-track-backend/internal/storage/sqlite"
	"github.com/berkaygencdogan/camp-track-backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "driver", cfg.DocstoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	assetStore, err := assets.NewLocalStore(cfg.AssetDir, cfg.AssetBaseURL)
	if err != nil {
		slog.Error("Failed to initialize asset store", "error", err)
		os.Exit(1)
	}

	set := ledger.New(store, assetStore)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.LegacyAdminUIDs) > 0 {
		promoted, err := set.Users.PromoteLegacyAdmins(ctx, cfg.LegacyAdminUIDs)
		if err != nil {
			slog.Error("Failed to migrate legacy admins", "error", err)
			os.Exit(1)
		}
		slog.Info("Legacy admins migrated", "listed", len(cfg.LegacyAdminUIDs), "promoted", promoted)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(set.Users)

	mux := http.NewServeMux()
	service.New(set, authenticator, jwtManager, slog.Default()).Mount(mux, jwtManager)
	mux.Handle("/metrics", promhttp.Handler())

	// Assets are served locally only when the base URL is a path on this host.
	if strings.HasPrefix(cfg.AssetBaseURL, "/") {
		prefix := cfg.AssetBaseURL + "/"
		mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(assetStore.Root()))))
		slog.Info("Serving assets", "path", assetStore.Root(), "url", prefix)
	}

	scheduler := jobs.NewScheduler(set.Notifications, set.Membership, cfg.NotificationRetention)
	if err := scheduler.Start(cfg.MaintenanceSchedule); err != nil {
		slog.Error("Failed to start maintenance scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Stop()

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", server.Addr, "driver", cfg.DocstoreDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// openStore opens the configured document store.
func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.DocstoreDriver {
	case config.DriverRedis:
		store, err := redis.New(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", "redis", "prefix", cfg.RedisPrefix)
		return store, nil
	default:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.Info("Storage initialized", "driver", "sqlite", "database", cfg.SQLitePath)
		return store, nil
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
