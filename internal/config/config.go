// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Document store drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config captures environment driven configuration values for the server.
type Config struct {
	Port int

	DocstoreDriver string
	SQLitePath     string
	RedisURL       string
	RedisPrefix    string

	JWTSecret string
	JWTTTL    time.Duration

	AssetDir     string
	AssetBaseURL string

	// LegacyAdminUIDs are promoted to the admin role at startup.
	LegacyAdminUIDs []string

	LogLevel string

	NotificationRetention time.Duration
	MaintenanceSchedule   string
}

// Load reads a .env file if present, then parses the process environment.
//
// Optional fields get defaults. Missing required values and unparsable values
// are reported together in one error.
func Load() (Config, error) {
	// A missing .env file is normal in production.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the current process environment without reading .env.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:                  8080,
		DocstoreDriver:        DriverSQLite,
		SQLitePath:            "./data/camptrack.db",
		RedisURL:              "redis://localhost:6379/0",
		RedisPrefix:           "camptrack:",
		JWTTTL:                7 * 24 * time.Hour,
		AssetDir:              "./data/uploads",
		AssetBaseURL:          "/uploads",
		LogLevel:              "info",
		NotificationRetention: 30 * 24 * time.Hour,
		MaintenanceSchedule:   "@every 1h",
	}

	var missing, invalid []string

	if v := getEnv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = port
		}
	}

	if v := getEnv("DOCSTORE_DRIVER"); v != "" {
		switch strings.ToLower(v) {
		case DriverSQLite, DriverRedis:
			cfg.DocstoreDriver = strings.ToLower(v)
		default:
			invalid = append(invalid, "DOCSTORE_DRIVER")
		}
	}

	cfg.SQLitePath = getEnvDefault("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = getEnvDefault("REDIS_URL", cfg.RedisURL)
	cfg.RedisPrefix = getEnvDefault("REDIS_PREFIX", cfg.RedisPrefix)

	if cfg.JWTSecret = getEnv("JWT_SECRET"); cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if v := getEnv("JWT_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "JWT_TTL")
		} else {
			cfg.JWTTTL = ttl
		}
	}

	cfg.AssetDir = getEnvDefault("ASSET_DIR", cfg.AssetDir)
	cfg.AssetBaseURL = strings.TrimRight(getEnvDefault("ASSET_BASE_URL", cfg.AssetBaseURL), "/")

	if v := getEnv("LEGACY_ADMIN_UIDS"); v != "" {
		for _, uid := range strings.Split(v, ",") {
			if uid = strings.TrimSpace(uid); uid != "" {
				cfg.LegacyAdminUIDs = append(cfg.LegacyAdminUIDs, uid)
			}
		}
	}

	cfg.LogLevel = getEnvDefault("LOG_LEVEL", cfg.LogLevel)

	if v := getEnv("NOTIFICATION_RETENTION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "NOTIFICATION_RETENTION")
		} else {
			cfg.NotificationRetention = d
		}
	}

	cfg.MaintenanceSchedule = getEnvDefault("MAINTENANCE_SCHEDULE", cfg.MaintenanceSchedule)

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", ")))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvDefault(key, fallback string) string {
	if v := getEnv(key); v != "" {
		return v
	}
	return fallback
}
