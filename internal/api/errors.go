package api

import (
	"errors"
	"net/http"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/domain/srs"
	"github.com/langcontrol/langcontrol-api/internal/platform/session"
	"github.com/langcontrol/langcontrol-api/internal/service/review"
	"github.com/langcontrol/langcontrol-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Input validation errors
	case errors.Is(err, review.ErrInvalidSessionRequest),
		errors.Is(err, review.ErrInvalidRatingInput),
		errors.Is(err, srs.ErrInvalidTimezone),
		errors.Is(err, srs.ErrUnsupportedRating):
		return http.StatusBadRequest

	// State-protocol errors: caller/session desynchronization
	case errors.Is(err, review.ErrStaleRating),
		errors.Is(err, domain.ErrEmptyQueue):
		return http.StatusConflict

	// Not found errors
	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, review.ErrInvalidSessionRequest):
		return "Invalid session request"

	case errors.Is(err, review.ErrInvalidRatingInput):
		return "Invalid rating input"

	case errors.Is(err, srs.ErrInvalidTimezone):
		return "Invalid time zone"

	case errors.Is(err, srs.ErrUnsupportedRating):
		return "Rating is not applicable to this card"

	case errors.Is(err, review.ErrStaleRating):
		return "Rating does not match the current card"

	case errors.Is(err, domain.ErrEmptyQueue):
		return "Review session is already complete"

	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, session.ErrSessionNotFound):
		return "Review session not found"

	default:
		return "An unexpected error occurred"
	}
}
