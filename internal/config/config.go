package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr   = ":8080"
	defaultDatabaseURL  = "leadcrm.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultJWTAccessTTL = "24h"
	defaultUploadsDir   = "./uploads"
	defaultStaticBase   = "/static/uploads"
	defaultMaxFileKB    = 5120 // matches the documented 5 MB document limit
	defaultDateFormat   = "2006-01-02"
)

type Config struct {
	AppEnv       string
	ListenAddr   string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration
	UploadsDir   string
	StaticBase   string
	MaxFileBytes int64
	DateFormat   string
}

func Load() (*Config, error) {
	appEnv := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev")))

	cfg := &Config{
		AppEnv:      appEnv,
		ListenAddr:  strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr)),
		DatabaseURL: strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL)),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		UploadsDir:  strings.TrimSpace(getEnv("UPLOADS_DIR", defaultUploadsDir)),
		StaticBase:  strings.TrimSpace(getEnv("STATIC_BASE", defaultStaticBase)),
		DateFormat:  strings.TrimSpace(getEnv("DATE_FORMAT", defaultDateFormat)),
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}

	maxKB, err := parseIntEnv("MAX_FILE_KB", defaultMaxFileKB)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileBytes = maxKB * 1024

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.MaxFileBytes <= 0 {
		return fmt.Errorf("MAX_FILE_KB must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
