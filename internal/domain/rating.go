package domain

import "fmt"

// RatingType represents a learning-outcome signal submitted for the card at
// the head of a review session. The enumeration is closed: each rating is
// meaningful only for one card mode, and the srs package rejects ratings
// that are not mapped for the card's current mode.
type RatingType string

// Possible rating values.
const (
	// RatingLearnNext keeps a learn-mode card in learn mode and pushes it to
	// the next learn step.
	RatingLearnNext RatingType = "learn_next"

	// RatingPromote transitions a learn-mode card to review mode with the
	// baseline review interval.
	RatingPromote RatingType = "promote"

	// RatingForgot shrinks a review-mode card's interval; the card is demoted
	// back to learn mode if the result falls below the review floor.
	RatingForgot RatingType = "forgot"

	// RatingHard keeps a review-mode card's interval roughly unchanged.
	RatingHard RatingType = "hard"

	// RatingGood grows a review-mode card's interval moderately.
	RatingGood RatingType = "good"

	// RatingEasy grows a review-mode card's interval aggressively.
	RatingEasy RatingType = "easy"
)

// IsValid reports whether the rating is part of the closed enumeration.
func (r RatingType) IsValid() bool {
	switch r {
	case RatingLearnNext, RatingPromote, RatingForgot, RatingHard, RatingGood, RatingEasy:
		return true
	default:
		return false
	}
}

// RatingInput is a transient rating event: which card was rated and how.
// It is never persisted as an entity.
type RatingInput struct {
	FlashcardID int64      `json:"flashcard_id" validate:"required,gt=0"`
	Rating      RatingType `json:"rating"       validate:"required,oneof=learn_next promote forgot hard good easy"`
}

// Validate checks that both fields are present and the flashcard ID is positive.
func (in RatingInput) Validate() error {
	if in.FlashcardID <= 0 {
		return fmt.Errorf("%w: flashcard ID must be positive", ErrInvalidID)
	}
	if !in.Rating.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRatingType, in.Rating)
	}
	return nil
}
