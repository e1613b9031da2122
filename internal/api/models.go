package api

import (
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// StartSessionRequest represents the request body for starting a review session.
type StartSessionRequest struct {
	DeckID   int64  `json:"deck_id"  validate:"required,gt=0"`
	Timezone string `json:"timezone" validate:"required"`
	Limit    int    `json:"limit"    validate:"omitempty,gt=0"`
}

// RatingRequest represents the request body for submitting a rating for the
// card at the head of the session queue.
type RatingRequest struct {
	FlashcardID int64  `json:"flashcard_id" validate:"required,gt=0"`
	Rating      string `json:"rating"       validate:"required,oneof=learn_next promote forgot hard good easy"`
}

// CardResponse represents the response data for a flashcard.
type CardResponse struct {
	ID                  int64     `json:"id"`
	DeckID              int64     `json:"deck_id"`
	Front               string    `json:"front"`
	Back                string    `json:"back"`
	SourceLanguage      string    `json:"source_language"`
	TargetLanguage      string    `json:"target_language"`
	Mode                string    `json:"mode"`
	LastReviewAt        time.Time `json:"last_review_at"`
	CurrentIntervalDays float64   `json:"current_interval_days"`
	NextReviewAt        time.Time `json:"next_review_at"`
	NextReviewDate      string    `json:"next_review_date"`
}

// Session statuses reported to the client.
const (
	// StatusReviewing means the session still has cards; render the current card.
	StatusReviewing = "reviewing"

	// StatusSessionComplete means no cards remain; return to the deck list.
	StatusSessionComplete = "session_complete"
)

// SessionResponse represents the state of a review session: the current card
// with its display mode while reviewing, or just the completion status once
// the queue is exhausted.
type SessionResponse struct {
	SessionID   string        `json:"session_id,omitempty"`
	Status      string        `json:"status"`
	CurrentCard *CardResponse `json:"current_card,omitempty"`
	DisplayMode string        `json:"display_mode,omitempty"`
	Remaining   int           `json:"remaining"`
}

// cardToResponse converts a domain.Flashcard to a CardResponse.
func cardToResponse(card *domain.Flashcard) *CardResponse {
	return &CardResponse{
		ID:                  card.ID,
		DeckID:              card.DeckID,
		Front:               card.Front,
		Back:                card.Back,
		SourceLanguage:      string(card.SourceLanguage),
		TargetLanguage:      string(card.TargetLanguage),
		Mode:                string(card.Mode),
		LastReviewAt:        card.LastReviewAt,
		CurrentIntervalDays: card.CurrentIntervalDays,
		NextReviewAt:        card.NextReviewAt,
		NextReviewDate:      card.NextReviewDate.Format("2006-01-02"),
	}
}
