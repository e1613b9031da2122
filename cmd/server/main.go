// Package main implements the entry point for the langcontrol API server,
// the review engine behind the language-learning flashcard application.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/config"
	"github.com/langcontrol/langcontrol-api/internal/domain/srs"
	"github.com/langcontrol/langcontrol-api/internal/platform/logger"
	"github.com/langcontrol/langcontrol-api/internal/platform/postgres"
	"github.com/langcontrol/langcontrol-api/internal/platform/session"
	"github.com/langcontrol/langcontrol-api/internal/service/review"
	"github.com/langcontrol/langcontrol-api/internal/task"
)

// sessionPurgeInterval is how often expired review sessions are swept.
const sessionPurgeInterval = 15 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("session_limit", cfg.Review.SessionLimit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return err
	}
	log.Info("database migrations applied")

	// Wire the review engine: store -> scheduler -> service -> handlers.
	cardStore := postgres.NewPostgresCardStore(db, log)
	scheduler := srs.NewServiceWithParams(srs.NewParams(srs.ParamsConfig{
		ReviewBaselineDays:    cfg.Review.ReviewBaselineDays,
		MinReviewIntervalDays: cfg.Review.MinReviewIntervalDays,
		ForgotMultiplier:      cfg.Review.ForgotMultiplier,
		HardMultiplier:        cfg.Review.HardMultiplier,
		GoodMultiplier:        cfg.Review.GoodMultiplier,
		EasyMultiplier:        cfg.Review.EasyMultiplier,
	}))
	cardRepo := review.NewCardRepositoryAdapter(cardStore, db)
	reviewService := review.NewReviewService(cardRepo, scheduler, log)

	sessionTTL := time.Duration(cfg.Review.SessionTTLMinutes) * time.Minute
	sessions := session.NewStore(sessionTTL, log)

	maintenance := task.NewRunner(sessionPurgeInterval, log)
	maintenance.Register(task.JobFunc{
		JobName: "purge_expired_sessions",
		Fn: func(_ context.Context, now time.Time) error {
			if removed := sessions.Purge(now); removed > 0 {
				log.Info("purged expired review sessions", slog.Int("count", removed))
			}
			return nil
		},
	})
	maintenance.Start(ctx)
	defer maintenance.Stop()

	router := setupRouter(cfg, reviewService, sessions, log)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
