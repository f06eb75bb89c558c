// Copyright (c) 2026 Kritika. All rights reserved.

// Command api is the entry point for the Kritika HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"kritika/internal/api"
	"kritika/internal/catalog/category"
	"kritika/internal/catalog/genre"
	"kritika/internal/catalog/title"
	"kritika/internal/platform/config"
	"kritika/internal/platform/constants"
	"kritika/internal/platform/mailer"
	"kritika/internal/platform/migration"
	pgstore "kritika/internal/platform/postgres"
	redisstore "kritika/internal/platform/redis"
	"kritika/internal/platform/sec"
	"kritika/internal/review"
	"kritika/internal/users/account"
	"kritika/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "kritika"))
	slog.SetDefault(log)

	log.Info("[Kritika] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "kritika"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Application-lifetime context. Cancelled once main returns so the
	// background goroutines owned by the middleware stack stop cleanly.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	codeMailer := mailer.New(cfg, log)
	if cfg.SMTPHost == "" && !cfg.IsDevelopment() {
		log.Warn("smtp_not_configured", slog.String("fallback", "log-only mailer"))
	}

	userRepository := auth.NewUserRepository(pool)
	cooldownRepository := auth.NewCooldownRepository(rdb)
	authService := auth.NewService(userRepository, cooldownRepository, codeMailer, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountRepository := account.NewAccountRepository(pool)
	accountService := account.NewService(accountRepository, log)
	accountHandler := account.NewHandler(accountService)

	categoryRepository := category.NewPostgresRepository(pool)
	categoryService := category.NewService(categoryRepository, log)
	categoryHandler := category.NewHandler(categoryService)

	genreRepository := genre.NewPostgresRepository(pool)
	genreService := genre.NewService(genreRepository, log)
	genreHandler := genre.NewHandler(genreService)

	titleRepository := title.NewPostgresRepository(pool)
	titleService := title.NewService(titleRepository, categoryRepository, genreRepository, log)
	titleHandler := title.NewHandler(titleService)

	reviewRepository := review.NewPostgresRepository(pool)
	reviewService := review.NewService(reviewRepository, log)
	reviewHandler := review.NewHandler(reviewService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Users:     accountHandler,
		Category:  categoryHandler,
		Genre:     genreHandler,
		Title:     titleHandler,
		Review:    reviewHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
