package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/logger"

	"handyhub/internal/backend"
	"handyhub/internal/config"
	"handyhub/internal/database"
	"handyhub/internal/domain/stats"
	"handyhub/internal/pkg/jwt"
	"handyhub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := setupLogger(cfg)
	slog.SetDefault(log)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info("starting handyhub api", "env", cfg.AppEnv, "backend", cfg.Backend)

	deps := server.Dependencies{
		CacheTTL: cfg.StatsCacheTTL,
		JWT:      jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL),
		Origins:  cfg.CORSAllowedOrigins,
		Log:      log,
	}

	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := backend.DialSupabase(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Error("failed to connect to supabase", "error", err)
			os.Exit(1)
		}
		deps.Client = client
		deps.Counter = stats.NewClientCounter(client)
		log.Info("connected to supabase")

	default:
		gormLevel := logger.Warn
		if !cfg.IsProd() && cfg.LogLevel <= slog.LevelDebug {
			gormLevel = logger.Info
		}
		db, err := database.Connect(cfg.DatabaseURL, gormLevel)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		if database.IsPostgres(cfg.DatabaseURL) && !cfg.AutoMigrate {
			if err := database.MigrateUp(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
				log.Error("failed to apply migrations", "error", err)
				os.Exit(1)
			}
		} else if err := database.AutoMigrate(db, server.Models()...); err != nil {
			log.Error("failed to auto-migrate", "error", err)
			os.Exit(1)
		}

		sqlDB, err := database.SQLX(db)
		if err != nil {
			log.Error("failed to open sqlx handle", "error", err)
			os.Exit(1)
		}
		deps.Client = backend.NewGorm(db)
		deps.Counter = stats.NewSQLCounter(sqlDB)
	}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// stats fall back to recomputing on every read
			log.Warn("redis unreachable, stats cache degraded", "error", err)
		}
		deps.Cache = stats.NewRedisCache(rdb)
	}

	router, _ := server.NewRouter(deps)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
