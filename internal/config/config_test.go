package config

import (
	"strings"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv failed: %v", err)
		}
		if cfg.Port != 8080 {
			t.Errorf("Port: got %d, want 8080", cfg.Port)
		}
		if cfg.DocstoreDriver != DriverSQLite {
			t.Errorf("DocstoreDriver: got %q", cfg.DocstoreDriver)
		}
		if cfg.JWTTTL != 7*24*time.Hour {
			t.Errorf("JWTTTL: got %v", cfg.JWTTTL)
		}
		if len(cfg.LegacyAdminUIDs) != 0 {
			t.Errorf("LegacyAdminUIDs: got %v", cfg.LegacyAdminUIDs)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("PORT", "9090")
		t.Setenv("DOCSTORE_DRIVER", "Redis")
		t.Setenv("LEGACY_ADMIN_UIDS", " a1, ,a2 ")
		t.Setenv("NOTIFICATION_RETENTION", "48h")
		t.Setenv("ASSET_BASE_URL", "https://cdn.example.com/")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatalf("FromEnv failed: %v", err)
		}
		if cfg.Addr() != ":9090" {
			t.Errorf("Addr: got %q", cfg.Addr())
		}
		if cfg.DocstoreDriver != DriverRedis {
			t.Errorf("DocstoreDriver: got %q", cfg.DocstoreDriver)
		}
		if len(cfg.LegacyAdminUIDs) != 2 || cfg.LegacyAdminUIDs[0] != "a1" || cfg.LegacyAdminUIDs[1] != "a2" {
			t.Errorf("LegacyAdminUIDs: got %v", cfg.LegacyAdminUIDs)
		}
		if cfg.NotificationRetention != 48*time.Hour {
			t.Errorf("NotificationRetention: got %v", cfg.NotificationRetention)
		}
		if cfg.AssetBaseURL != "https://cdn.example.com" {
			t.Errorf("AssetBaseURL: got %q", cfg.AssetBaseURL)
		}
	})

	t.Run("missing and invalid reported together", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("PORT", "not-a-port")
		t.Setenv("JWT_TTL", "-1h")

		_, err := FromEnv()
		if err == nil {
			t.Fatal("expected error")
		}
		msg := err.Error()
		for _, key := range []string{"JWT_SECRET", "PORT", "JWT_TTL"} {
			if !strings.Contains(msg, key) {
				t.Errorf("error %q does not mention %s", msg, key)
			}
		}
	})
}
