package srs

import (
	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// minutesPerDay converts learn steps expressed in minutes to fractional days.
const minutesPerDay = 24 * 60

// Params defines all configurable parameters for the scheduling algorithm.
// The rating-to-multiplier table is policy, not code: callers tune it through
// ParamsConfig rather than editing the algorithm.
type Params struct {
	// LearnStepsDays is the ascending ramp of learn-mode intervals, in
	// fractional days. A "learn_next" rating moves the card to the first step
	// strictly greater than its current interval, or stays on the last step.
	LearnStepsDays []float64

	// ReviewBaselineDays seeds the interval when a card is promoted from
	// learn mode to review mode.
	ReviewBaselineDays float64

	// MinReviewIntervalDays is the review-mode floor. A demotion that would
	// shrink the interval below this floor sends the card back to learn mode.
	MinReviewIntervalDays float64

	// ReviewMultiplier maps review-mode ratings to interval multipliers:
	// demotion < 1, maintenance ~= 1, growth > 1. A rating absent from the
	// table is not applicable in review mode.
	ReviewMultiplier map[domain.RatingType]float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values leave the corresponding default in place.
type ParamsConfig struct {
	LearnStepsDays        []float64
	ReviewBaselineDays    float64
	MinReviewIntervalDays float64

	ForgotMultiplier float64
	HardMultiplier   float64
	GoodMultiplier   float64
	EasyMultiplier   float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		// Ten minutes, then a day.
		LearnStepsDays: []float64{10.0 / minutesPerDay, 1.0},

		ReviewBaselineDays:    1.0,
		MinReviewIntervalDays: 1.0,

		ReviewMultiplier: map[domain.RatingType]float64{
			domain.RatingForgot: 0.25, // demotion, back toward learn mode
			domain.RatingHard:   1.0,  // maintenance
			domain.RatingGood:   1.5,  // moderate growth
			domain.RatingEasy:   2.0,  // aggressive growth
		},
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if len(config.LearnStepsDays) > 0 {
		params.LearnStepsDays = config.LearnStepsDays
	}
	if config.ReviewBaselineDays > 0 {
		params.ReviewBaselineDays = config.ReviewBaselineDays
	}
	if config.MinReviewIntervalDays > 0 {
		params.MinReviewIntervalDays = config.MinReviewIntervalDays
	}

	if config.ForgotMultiplier > 0 {
		params.ReviewMultiplier[domain.RatingForgot] = config.ForgotMultiplier
	}
	if config.HardMultiplier > 0 {
		params.ReviewMultiplier[domain.RatingHard] = config.HardMultiplier
	}
	if config.GoodMultiplier > 0 {
		params.ReviewMultiplier[domain.RatingGood] = config.GoodMultiplier
	}
	if config.EasyMultiplier > 0 {
		params.ReviewMultiplier[domain.RatingEasy] = config.EasyMultiplier
	}

	return params
}
