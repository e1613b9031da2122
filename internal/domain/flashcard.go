package domain

import (
	"errors"
	"time"
)

// CardMode identifies which scheduling regime governs a flashcard.
type CardMode string

// Possible card modes.
const (
	// CardModeLearn is the short-interval, frequent-repetition phase for a
	// card that has not yet been promoted to long-term review.
	CardModeLearn CardMode = "learn"

	// CardModeReview is the long-interval phase where successful ratings
	// geometrically grow the interval.
	CardModeReview CardMode = "review"
)

// IsValid reports whether the mode is one of the known card modes.
func (m CardMode) IsValid() bool {
	return m == CardModeLearn || m == CardModeReview
}

// LanguageCode identifies a language a flashcard side is written in.
type LanguageCode string

// Supported language codes.
const (
	LanguageEnglish LanguageCode = "en"
	LanguageGerman  LanguageCode = "de"
	LanguageSpanish LanguageCode = "es"
	LanguageFrench  LanguageCode = "fr"
	LanguageItalian LanguageCode = "it"
	LanguagePolish  LanguageCode = "pl"
)

// IsValid reports whether the language code is supported.
func (l LanguageCode) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageGerman, LanguageSpanish,
		LanguageFrench, LanguageItalian, LanguagePolish:
		return true
	default:
		return false
	}
}

// Flashcard-specific validation errors.
var (
	// ErrCardDeckIDInvalid is returned when a card's deck reference is not positive.
	ErrCardDeckIDInvalid = errors.New("card deck ID must be positive")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back cannot be empty")

	// ErrCardLanguageInvalid is returned when a card's source or target
	// language code is not supported.
	ErrCardLanguageInvalid = errors.New("card language code is not supported")

	// ErrCardModeInvalid is returned when a card's mode is not a known mode.
	ErrCardModeInvalid = errors.New("card mode is invalid")

	// ErrCardIntervalNegative is returned when a card's current interval is negative.
	ErrCardIntervalNegative = errors.New("card interval cannot be negative")
)

// Flashcard is a single learning unit together with its spaced-repetition
// scheduling state. Cards are owned by exactly one deck; the deck reference
// is a back-reference only and never owns the card from this side.
//
// Scheduling fields are maintained exclusively by the srs.Scheduler:
// LastReviewAt is zero until the first rating is applied, NextReviewAt is the
// UTC instant the card becomes due again, and NextReviewDate is the calendar
// date (midnight UTC) that NextReviewAt falls on in the owner's time zone at
// schedule-write time. NextReviewDate is recomputed whenever NextReviewAt
// changes so that due checks are a cheap date comparison.
type Flashcard struct {
	ID                  int64        `json:"id"`
	DeckID              int64        `json:"deck_id"`
	Front               string       `json:"front"`
	Back                string       `json:"back"`
	SourceLanguage      LanguageCode `json:"source_language"`
	TargetLanguage      LanguageCode `json:"target_language"`
	Mode                CardMode     `json:"mode"`
	LastReviewAt        time.Time    `json:"last_review_at"`
	CurrentIntervalDays float64      `json:"current_interval_days"`
	NextReviewAt        time.Time    `json:"next_review_at"`
	NextReviewDate      time.Time    `json:"next_review_date"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// NewFlashcard creates a new flashcard in the initial learn-mode state.
// The card has never been reviewed and is due immediately.
// The ID is zero until the card is persisted.
// Returns an error if validation fails.
func NewFlashcard(
	deckID int64,
	front, back string,
	source, target LanguageCode,
	now time.Time,
) (*Flashcard, error) {
	now = now.UTC()
	card := &Flashcard{
		DeckID:              deckID,
		Front:               front,
		Back:                back,
		SourceLanguage:      source,
		TargetLanguage:      target,
		Mode:                CardModeLearn,
		CurrentIntervalDays: 0,
		NextReviewAt:        now,
		NextReviewDate:      DateOf(now),
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// NewReviewFlashcard creates a new flashcard already in review mode with the
// given interval in days. Used for cards imported with known review history.
// Returns an error if validation fails.
func NewReviewFlashcard(
	deckID int64,
	front, back string,
	source, target LanguageCode,
	intervalDays float64,
	now time.Time,
) (*Flashcard, error) {
	card, err := NewFlashcard(deckID, front, back, source, target, now)
	if err != nil {
		return nil, err
	}

	card.Mode = CardModeReview
	card.CurrentIntervalDays = intervalDays
	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (c *Flashcard) Validate() error {
	if c.DeckID <= 0 {
		return ErrCardDeckIDInvalid
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Back == "" {
		return ErrCardBackEmpty
	}

	if !c.SourceLanguage.IsValid() || !c.TargetLanguage.IsValid() {
		return ErrCardLanguageInvalid
	}

	if !c.Mode.IsValid() {
		return ErrCardModeInvalid
	}

	if c.CurrentIntervalDays < 0 {
		return ErrCardIntervalNegative
	}

	return nil
}

// IsNew reports whether the card has never been rated. New cards are always
// considered due regardless of their scheduled review date.
func (c *Flashcard) IsNew() bool {
	return c.LastReviewAt.IsZero()
}

// Clone returns a copy of the card. The srs.Scheduler follows the immutable
// update pattern: it clones the card, mutates the clone, and returns it.
func (c *Flashcard) Clone() *Flashcard {
	clone := *c
	return &clone
}

// DateOf truncates a UTC instant to its calendar date, normalized to
// midnight UTC. Used for day-granularity due comparisons.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
