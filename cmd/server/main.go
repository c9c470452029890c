// Command server runs the task management API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"taskflow/internal/api"
	"taskflow/internal/audit"
	"taskflow/internal/config"
	"taskflow/internal/platform/logger"
	"taskflow/internal/service/auth"
	"taskflow/internal/service/stats"
	"taskflow/internal/service/tasks"
	"taskflow/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Local development convenience; real deployments set environment
	// variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel, nil)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.Bool("dev_mode", cfg.Server.DevMode))

	recorder, closeAudit, err := setupAudit(cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	taskStore := store.NewTaskStore()
	categoryStore := store.NewCategoryStore()
	userStore := store.NewUserStore()
	if err := seedFixtures(taskStore, categoryStore, userStore); err != nil {
		return fmt.Errorf("failed to seed fixtures: %w", err)
	}

	verifier, issuer, err := setupTokens(cfg, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterDeps{
		Tasks:      tasks.New(taskStore, categoryStore, recorder, log),
		Stats:      stats.New(taskStore, userStore, log),
		Categories: categoryStore,
		Users:      userStore,
		Verifier:   verifier,
		Issuer:     issuer,
		Passwords:  auth.BcryptVerifier{},
		Audit:      recorder,
		Logger:     log,
		DevMode:    cfg.Server.DevMode,
	})

	return serve(cfg, log, router)
}

// setupAudit opens the append-only operation log. A broken audit sink is
// not fatal; the server runs without one and says so.
func setupAudit(cfg *config.Config, log *slog.Logger) (audit.Recorder, func(), error) {
	auditLogger, err := audit.New(cfg.Audit.LogPath, cfg.Audit.BufferSize, log)
	if err != nil {
		log.Warn("audit log unavailable, operations will not be recorded",
			slog.String("path", cfg.Audit.LogPath),
			slog.String("error", err.Error()))
		return audit.Discard{}, func() {}, nil
	}
	log.Info("audit log opened", slog.String("path", cfg.Audit.LogPath))
	return auditLogger, auditLogger.Close, nil
}

// setupTokens picks the token scheme: signed JWTs when a secret is
// configured, the fixed development tokens otherwise.
func setupTokens(cfg *config.Config, log *slog.Logger) (auth.TokenVerifier, auth.TokenIssuer, error) {
	if cfg.Auth.JWTSecret == "" {
		log.Warn("no jwt_secret configured, using fixed development tokens")
		return auth.StaticVerifier{}, auth.StaticIssuer{}, nil
	}

	lifetime := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute
	authority, err := auth.NewJWTAuthority(cfg.Auth.JWTSecret, lifetime)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up token authority: %w", err)
	}
	log.Info("jwt token authority enabled",
		slog.Duration("token_lifetime", lifetime))
	return authority, authority, nil
}

// serve runs the HTTP server until SIGINT or SIGTERM, then drains
// in-flight requests for up to ten seconds.
func serve(cfg *config.Config, log *slog.Logger, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdownCh:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server shutdown completed")
	return nil
}
