package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendGorm     = "gorm"
	BackendSupabase = "supabase"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultDatabaseURL   = "file:handyhub.db?_pragma=busy_timeout(5000)"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultStatsCacheTTL = "30s"
	defaultLogLevel      = "info"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel slog.Level

	Backend        string
	DatabaseURL    string
	AutoMigrate    bool
	MigrationsPath string
	SupabaseURL    string
	SupabaseKey    string

	JWTSecret    string
	JWTAccessTTL time.Duration

	RedisURL      string
	StatsCacheTTL time.Duration

	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.Backend = strings.ToLower(strings.TrimSpace(getEnv("BACKEND", BackendGorm)))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.MigrationsPath = strings.TrimSpace(getEnv("MIGRATIONS_PATH", "file://migrations"))
	cfg.SupabaseURL = strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	cfg.SupabaseKey = strings.TrimSpace(os.Getenv("SUPABASE_KEY"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.AutoMigrate = parseBoolEnv("AUTO_MIGRATE", "true")
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.StatsCacheTTL, err = parseDurationEnv("STATS_CACHE_TTL", defaultStatsCacheTTL)
	if err != nil {
		return nil, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", defaultLogLevel))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsProd() bool { return isProdLike(c.AppEnv) }

func validateConfig(cfg *Config) error {
	if cfg.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR must not be empty")
	}
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.StatsCacheTTL < 0 {
		return fmt.Errorf("STATS_CACHE_TTL must be >= 0")
	}

	switch cfg.Backend {
	case BackendGorm:
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when BACKEND=gorm")
		}
	case BackendSupabase:
		if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set when BACKEND=supabase")
		}
	default:
		return fmt.Errorf("BACKEND must be one of: %s, %s", BackendGorm, BackendSupabase)
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if len(cfg.CORSAllowedOrigins) == 0 {
			return fmt.Errorf("in prod/release CORS_ALLOWED_ORIGINS must be set")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
