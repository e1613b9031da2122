// Package review orchestrates review sessions: selecting the due set that
// seeds a session queue, and processing ratings against the queue head.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// NextAction tells the caller how to proceed after a rating is applied.
type NextAction string

// Possible next actions.
const (
	// NextActionContinue means the queue still holds cards to review.
	NextActionContinue NextAction = "continue_session"

	// NextActionComplete means the last card was rated and the session is over.
	NextActionComplete NextAction = "session_complete"
)

// ReviewService drives review sessions over a deck's due flashcards.
type ReviewService interface {
	// StartSession selects the cards of the deck that are due on the user's
	// local calendar day, shuffles them, caps the set at limit, and returns a
	// session queue seeded with the result. An empty queue is a valid,
	// non-error outcome meaning the deck has nothing due.
	//
	// Returns ErrInvalidSessionRequest if deckID or limit is not positive,
	// and srs.ErrInvalidTimezone if the zone identifier is blank or unknown.
	StartSession(
		ctx context.Context,
		deckID int64,
		timezoneID string,
		nowUTC time.Time,
		limit int,
	) (*domain.SessionQueue, error)

	// SubmitRating validates the rating input, applies it to the card at the
	// head of the queue, persists the new schedule in a single-card
	// transactional write, and advances the queue.
	//
	// The rating input must reference the queue's current head card; a
	// mismatch is a caller/session desynchronization and fails with
	// ErrStaleRating, leaving the queue unmodified. If the persistence write
	// fails the rating is not applied and the queue is also left unmodified,
	// so the caller may safely retry the same submission.
	SubmitRating(
		ctx context.Context,
		queue *domain.SessionQueue,
		input domain.RatingInput,
		nowUTC time.Time,
		timezoneID string,
	) (NextAction, error)
}

// Common error types for ReviewService
var (
	// ErrInvalidSessionRequest indicates a start-session request with a
	// non-positive deck ID or limit.
	ErrInvalidSessionRequest = errors.New("invalid session request")

	// ErrInvalidRatingInput indicates a rating submission with a missing or
	// non-positive flashcard ID, or a rating outside the closed enumeration.
	ErrInvalidRatingInput = errors.New("invalid rating input")

	// ErrStaleRating indicates a rating submitted for a card that is not at
	// the head of the queue.
	ErrStaleRating = errors.New("rating does not match the current card")

	// ErrNilQueue indicates a rating submission without a session queue.
	ErrNilQueue = errors.New("session queue cannot be nil")
)

// ServiceError wraps errors from the review service with additional context,
// letting consumers differentiate failures with errors.As instead of string
// matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError returns a new ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "start_session",
		Message:   message,
		Err:       err,
	}
}

// NewSubmitRatingError returns a new ServiceError for the submit_rating operation.
func NewSubmitRatingError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "submit_rating",
		Message:   message,
		Err:       err,
	}
}
