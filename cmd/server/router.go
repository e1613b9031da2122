package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/langcontrol/langcontrol-api/internal/api"
	apimiddleware "github.com/langcontrol/langcontrol-api/internal/api/middleware"
	"github.com/langcontrol/langcontrol-api/internal/config"
	"github.com/langcontrol/langcontrol-api/internal/platform/session"
	"github.com/langcontrol/langcontrol-api/internal/service/review"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func setupRouter(
	cfg *config.Config,
	reviewService review.ReviewService,
	sessions *session.Store,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.Trace)

	reviewHandler := api.NewReviewHandler(reviewService, sessions, cfg.Review.SessionLimit, log)

	r.Route("/api", func(r chi.Router) {
		r.Post("/reviews", reviewHandler.StartSession)
		r.Get("/reviews/{sessionID}", reviewHandler.CurrentCard)
		r.Post("/reviews/{sessionID}/ratings", reviewHandler.SubmitRating)
		r.Delete("/reviews/{sessionID}", reviewHandler.AbandonSession)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
