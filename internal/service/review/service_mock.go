package review

import (
	"context"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// MockReviewService is a mock implementation of the ReviewService interface
// for testing.
type MockReviewService struct {
	StartSessionFunc func(ctx context.Context, deckID int64, timezoneID string, nowUTC time.Time, limit int) (*domain.SessionQueue, error)
	SubmitRatingFunc func(ctx context.Context, queue *domain.SessionQueue, input domain.RatingInput, nowUTC time.Time, timezoneID string) (NextAction, error)
}

// Verify interface compliance at compile time
var _ ReviewService = (*MockReviewService)(nil)

// StartSession calls StartSessionFunc if set.
func (m *MockReviewService) StartSession(
	ctx context.Context,
	deckID int64,
	timezoneID string,
	nowUTC time.Time,
	limit int,
) (*domain.SessionQueue, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, deckID, timezoneID, nowUTC, limit)
	}
	return domain.NewSessionQueue(nil), nil
}

// SubmitRating calls SubmitRatingFunc if set.
func (m *MockReviewService) SubmitRating(
	ctx context.Context,
	queue *domain.SessionQueue,
	input domain.RatingInput,
	nowUTC time.Time,
	timezoneID string,
) (NextAction, error) {
	if m.SubmitRatingFunc != nil {
		return m.SubmitRatingFunc(ctx, queue, input, nowUTC, timezoneID)
	}
	return NextActionComplete, nil
}
