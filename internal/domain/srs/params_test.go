package srs

import (
	"testing"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if len(params.LearnStepsDays) != 2 {
		t.Fatalf("Expected 2 learn steps, got %d", len(params.LearnStepsDays))
	}
	// First step is ten minutes expressed in days.
	if got, want := params.LearnStepsDays[0], 10.0/1440.0; got != want {
		t.Errorf("Expected first learn step %f, got %f", want, got)
	}
	if params.LearnStepsDays[1] != 1.0 {
		t.Errorf("Expected second learn step 1.0, got %f", params.LearnStepsDays[1])
	}

	if params.ReviewBaselineDays != 1.0 {
		t.Errorf("Expected baseline 1.0, got %f", params.ReviewBaselineDays)
	}
	if params.MinReviewIntervalDays != 1.0 {
		t.Errorf("Expected review floor 1.0, got %f", params.MinReviewIntervalDays)
	}

	expected := map[domain.RatingType]float64{
		domain.RatingForgot: 0.25,
		domain.RatingHard:   1.0,
		domain.RatingGood:   1.5,
		domain.RatingEasy:   2.0,
	}
	for rating, want := range expected {
		if got := params.ReviewMultiplier[rating]; got != want {
			t.Errorf("Expected multiplier %f for %s, got %f", want, rating, got)
		}
	}

	// Learn-mode ratings must not appear in the review table.
	if _, ok := params.ReviewMultiplier[domain.RatingLearnNext]; ok {
		t.Error("Expected learn_next to be absent from the review multiplier table")
	}
	if _, ok := params.ReviewMultiplier[domain.RatingPromote]; ok {
		t.Error("Expected promote to be absent from the review multiplier table")
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{
		LearnStepsDays:        []float64{0.5, 2.0, 4.0},
		ReviewBaselineDays:    3.0,
		MinReviewIntervalDays: 2.0,
		ForgotMultiplier:      0.5,
		EasyMultiplier:        2.5,
	})

	if len(params.LearnStepsDays) != 3 || params.LearnStepsDays[0] != 0.5 {
		t.Errorf("Expected overridden learn steps, got %v", params.LearnStepsDays)
	}
	if params.ReviewBaselineDays != 3.0 {
		t.Errorf("Expected baseline 3.0, got %f", params.ReviewBaselineDays)
	}
	if params.MinReviewIntervalDays != 2.0 {
		t.Errorf("Expected floor 2.0, got %f", params.MinReviewIntervalDays)
	}
	if params.ReviewMultiplier[domain.RatingForgot] != 0.5 {
		t.Errorf("Expected forgot multiplier 0.5, got %f", params.ReviewMultiplier[domain.RatingForgot])
	}
	if params.ReviewMultiplier[domain.RatingEasy] != 2.5 {
		t.Errorf("Expected easy multiplier 2.5, got %f", params.ReviewMultiplier[domain.RatingEasy])
	}

	// Unset fields keep their defaults.
	if params.ReviewMultiplier[domain.RatingHard] != 1.0 {
		t.Errorf("Expected default hard multiplier 1.0, got %f", params.ReviewMultiplier[domain.RatingHard])
	}
	if params.ReviewMultiplier[domain.RatingGood] != 1.5 {
		t.Errorf("Expected default good multiplier 1.5, got %f", params.ReviewMultiplier[domain.RatingGood])
	}
}

func TestNewParamsZeroConfigKeepsDefaults(t *testing.T) {
	t.Parallel()

	params := NewParams(ParamsConfig{})
	defaults := NewDefaultParams()

	if params.ReviewBaselineDays != defaults.ReviewBaselineDays {
		t.Errorf("Expected default baseline, got %f", params.ReviewBaselineDays)
	}
	if params.MinReviewIntervalDays != defaults.MinReviewIntervalDays {
		t.Errorf("Expected default floor, got %f", params.MinReviewIntervalDays)
	}
	for rating, want := range defaults.ReviewMultiplier {
		if got := params.ReviewMultiplier[rating]; got != want {
			t.Errorf("Expected default multiplier %f for %s, got %f", want, rating, got)
		}
	}
}
