package srs

import (
	"fmt"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// nextLearnStep returns the learn-mode interval that follows the current one:
// the first configured step strictly greater than the current interval, or
// the last step once the ramp is exhausted.
func nextLearnStep(currentDays float64, params *Params) float64 {
	for _, step := range params.LearnStepsDays {
		if step > currentDays {
			return step
		}
	}
	return params.LearnStepsDays[len(params.LearnStepsDays)-1]
}

// daysToDuration converts a fractional day count to a time.Duration.
func daysToDuration(days float64) time.Duration {
	return time.Duration(days * float64(24*time.Hour))
}

// calculateNextCard computes the card state that results from applying a
// rating at the given instant. It is a pure function of its inputs: the input
// card is never mutated, and identical inputs always produce identical
// output, so a failed persistence write can safely be recomputed and retried.
//
// Mode transitions:
//   - learn + learn_next: stay in learn mode, advance to the next learn step.
//   - learn + promote: enter review mode at the baseline interval.
//   - review + mapped rating: multiply the interval by the rating's factor;
//     if the result falls below the review floor, demote back to learn mode
//     at the first learn step.
//
// A rating with no mapping for the card's current mode is an input error.
//
// In all cases LastReviewAt becomes now, NextReviewAt becomes now plus the
// new interval, and NextReviewDate is left for the caller to derive with
// Today, since only the caller knows the owner's zone.
func calculateNextCard(
	card *domain.Flashcard,
	rating domain.RatingType,
	now time.Time,
	params *Params,
) (*domain.Flashcard, error) {
	next := card.Clone()

	switch card.Mode {
	case domain.CardModeLearn:
		switch rating {
		case domain.RatingLearnNext:
			next.CurrentIntervalDays = nextLearnStep(card.CurrentIntervalDays, params)
		case domain.RatingPromote:
			next.Mode = domain.CardModeReview
			next.CurrentIntervalDays = params.ReviewBaselineDays
		default:
			return nil, fmt.Errorf("%w: %q is not applicable in learn mode",
				ErrUnsupportedRating, rating)
		}

	case domain.CardModeReview:
		multiplier, ok := params.ReviewMultiplier[rating]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not applicable in review mode",
				ErrUnsupportedRating, rating)
		}

		interval := card.CurrentIntervalDays * multiplier
		if interval < params.MinReviewIntervalDays {
			next.Mode = domain.CardModeLearn
			interval = params.LearnStepsDays[0]
		}
		next.CurrentIntervalDays = interval

	default:
		return nil, domain.ErrCardModeInvalid
	}

	next.LastReviewAt = now
	next.NextReviewAt = now.Add(daysToDuration(next.CurrentIntervalDays))
	next.UpdatedAt = now

	return next, nil
}
