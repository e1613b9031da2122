package srs

import (
	"errors"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// Common errors
var (
	ErrNilCard           = errors.New("flashcard cannot be nil")
	ErrUnsupportedRating = errors.New("unsupported rating type")
)

// Service defines the interface for scheduling operations on flashcards.
type Service interface {
	// ApplyRating computes the card state that results from applying a rating
	// at nowUTC, including the next review date in the owner's time zone.
	// It returns a new card snapshot and never persists anything; the
	// single-card write is the caller's responsibility.
	ApplyRating(
		card *domain.Flashcard,
		rating domain.RatingType,
		nowUTC time.Time,
		timezoneID string,
	) (*domain.Flashcard, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// ApplyRating implements the Service interface.
func (s *defaultService) ApplyRating(
	card *domain.Flashcard,
	rating domain.RatingType,
	nowUTC time.Time,
	timezoneID string,
) (*domain.Flashcard, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !rating.IsValid() {
		return nil, ErrUnsupportedRating
	}

	nowUTC = nowUTC.UTC()

	next, err := calculateNextCard(card, rating, nowUTC, s.params)
	if err != nil {
		return nil, err
	}

	nextDate, err := Today(next.NextReviewAt, timezoneID)
	if err != nil {
		return nil, err
	}
	next.NextReviewDate = nextDate

	return next, nil
}
