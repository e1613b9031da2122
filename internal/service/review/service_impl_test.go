package review_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/domain/srs"
	"github.com/langcontrol/langcontrol-api/internal/service/review"
	"github.com/langcontrol/langcontrol-api/internal/store"
)

// MockCardRepository is a mock implementation of the CardRepository interface
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) ListDeckCards(ctx context.Context, deckID int64) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flashcard), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) WithTx(tx *sql.Tx) review.CardRepository {
	args := m.Called(tx)
	return args.Get(0).(review.CardRepository)
}

func (m *MockCardRepository) DB() *sql.DB {
	// In-memory: the service skips transaction handling for a nil DB.
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(repo review.CardRepository) review.ReviewService {
	return review.NewReviewService(
		repo,
		srs.NewDefaultService(),
		testLogger(),
		review.WithRand(rand.New(rand.NewSource(1))),
	)
}

func dueCard(id int64, mode domain.CardMode, intervalDays float64, nextReviewDate time.Time) *domain.Flashcard {
	card := &domain.Flashcard{
		ID:                  id,
		DeckID:              1,
		Front:               "front",
		Back:                "back",
		SourceLanguage:      domain.LanguageSpanish,
		TargetLanguage:      domain.LanguageEnglish,
		Mode:                mode,
		CurrentIntervalDays: intervalDays,
		NextReviewDate:      nextReviewDate,
	}
	card.LastReviewAt = nextReviewDate.AddDate(0, 0, -1)
	return card
}

func TestStartSession(t *testing.T) {
	t.Parallel()
	now := time.Date(2023, 3, 14, 16, 37, 21, 0, time.UTC)
	today := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("selects due cards up to the limit", func(t *testing.T) {
		t.Parallel()
		repo := new(MockCardRepository)
		repo.On("ListDeckCards", mock.Anything, int64(1)).Return([]*domain.Flashcard{
			dueCard(1, domain.CardModeReview, 5, today),
			dueCard(2, domain.CardModeReview, 5, today.AddDate(0, 0, 2)), // not due
			dueCard(3, domain.CardModeLearn, 0, today.AddDate(0, 0, -1)),
			dueCard(4, domain.CardModeReview, 5, today),
		}, nil)

		svc := newTestService(repo)
		queue, err := svc.StartSession(context.Background(), 1, "UTC", now, 2)
		require.NoError(t, err)

		assert.Equal(t, 2, queue.Len())
		assert.Equal(t, domain.QueueStateActive, queue.State())
		repo.AssertExpectations(t)
	})

	t.Run("empty due set is a valid outcome", func(t *testing.T) {
		t.Parallel()
		repo := new(MockCardRepository)
		repo.On("ListDeckCards", mock.Anything, int64(1)).Return([]*domain.Flashcard{
			dueCard(1, domain.CardModeReview, 5, today.AddDate(0, 0, 7)),
		}, nil)

		svc := newTestService(repo)
		queue, err := svc.StartSession(context.Background(), 1, "UTC", now, 10)
		require.NoError(t, err)

		assert.Equal(t, 0, queue.Len())
		assert.Equal(t, domain.QueueStateExhausted, queue.State())
	})

	t.Run("rejects non-positive deck ID", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(new(MockCardRepository))

		_, err := svc.StartSession(context.Background(), 0, "UTC", now, 10)
		assert.ErrorIs(t, err, review.ErrInvalidSessionRequest)
	})

	t.Run("rejects non-positive limit", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(new(MockCardRepository))

		_, err := svc.StartSession(context.Background(), 1, "UTC", now, 0)
		assert.ErrorIs(t, err, review.ErrInvalidSessionRequest)
	})

	t.Run("rejects invalid time zone", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(new(MockCardRepository))

		_, err := svc.StartSession(context.Background(), 1, "Mars/Olympus_Mons", now, 10)
		assert.ErrorIs(t, err, srs.ErrInvalidTimezone)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		t.Parallel()
		repo := new(MockCardRepository)
		repo.On("ListDeckCards", mock.Anything, int64(1)).Return(nil, errors.New("connection refused"))

		svc := newTestService(repo)
		_, err := svc.StartSession(context.Background(), 1, "UTC", now, 10)
		require.Error(t, err)

		var svcErr *review.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "start_session", svcErr.Operation)
	})
}

func TestSubmitRating(t *testing.T) {
	t.Parallel()
	now := time.Date(2023, 3, 14, 16, 37, 21, 0, time.UTC)
	today := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("applies the rating and advances the queue", func(t *testing.T) {
		t.Parallel()
		head := dueCard(1, domain.CardModeReview, 11.6, today)
		repo := new(MockCardRepository)
		repo.On("GetByID", mock.Anything, int64(1)).Return(head, nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(card *domain.Flashcard) bool {
			return card.ID == 1 &&
				card.Mode == domain.CardModeReview &&
				card.CurrentIntervalDays > 23.1 && card.CurrentIntervalDays < 23.3
		})).Return(nil)

		queue := domain.NewSessionQueue([]*domain.Flashcard{
			head,
			dueCard(2, domain.CardModeLearn, 0, today),
		})

		svc := newTestService(repo)
		action, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingEasy}, now, "UTC")
		require.NoError(t, err)

		assert.Equal(t, review.NextActionContinue, action)
		assert.Equal(t, 1, queue.Len())
		repo.AssertExpectations(t)
	})

	t.Run("rating the last card completes the session", func(t *testing.T) {
		t.Parallel()
		head := dueCard(1, domain.CardModeLearn, 0, today)
		repo := new(MockCardRepository)
		repo.On("GetByID", mock.Anything, int64(1)).Return(head, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		queue := domain.NewSessionQueue([]*domain.Flashcard{head})

		svc := newTestService(repo)
		action, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingPromote}, now, "UTC")
		require.NoError(t, err)

		assert.Equal(t, review.NextActionComplete, action)
		assert.Equal(t, domain.QueueStateExhausted, queue.State())
	})

	t.Run("rejects a nil queue", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(new(MockCardRepository))

		_, err := svc.SubmitRating(context.Background(), nil,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingGood}, now, "UTC")
		assert.ErrorIs(t, err, review.ErrNilQueue)
	})

	t.Run("rejects invalid rating input", func(t *testing.T) {
		t.Parallel()
		queue := domain.NewSessionQueue([]*domain.Flashcard{dueCard(1, domain.CardModeReview, 5, today)})
		svc := newTestService(new(MockCardRepository))

		_, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 0, Rating: domain.RatingGood}, now, "UTC")
		assert.ErrorIs(t, err, review.ErrInvalidRatingInput)

		_, err = svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: "again"}, now, "UTC")
		assert.ErrorIs(t, err, review.ErrInvalidRatingInput)

		assert.Equal(t, 1, queue.Len())
	})

	t.Run("rating an exhausted queue fails", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(new(MockCardRepository))

		_, err := svc.SubmitRating(context.Background(), domain.NewSessionQueue(nil),
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingGood}, now, "UTC")
		assert.ErrorIs(t, err, domain.ErrEmptyQueue)
	})

	t.Run("stale rating leaves the queue untouched", func(t *testing.T) {
		t.Parallel()
		queue := domain.NewSessionQueue([]*domain.Flashcard{
			dueCard(1, domain.CardModeReview, 5, today),
			dueCard(2, domain.CardModeReview, 5, today),
		})
		svc := newTestService(new(MockCardRepository))

		_, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 2, Rating: domain.RatingGood}, now, "UTC")
		assert.ErrorIs(t, err, review.ErrStaleRating)
		assert.Equal(t, 2, queue.Len())
	})

	t.Run("missing card passes through as not found", func(t *testing.T) {
		t.Parallel()
		repo := new(MockCardRepository)
		repo.On("GetByID", mock.Anything, int64(1)).Return(nil, store.ErrCardNotFound)

		queue := domain.NewSessionQueue([]*domain.Flashcard{dueCard(1, domain.CardModeReview, 5, today)})
		svc := newTestService(repo)

		_, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingGood}, now, "UTC")
		assert.ErrorIs(t, err, store.ErrCardNotFound)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("rating not applicable to the card mode fails without advancing", func(t *testing.T) {
		t.Parallel()
		head := dueCard(1, domain.CardModeLearn, 0, today)
		repo := new(MockCardRepository)
		repo.On("GetByID", mock.Anything, int64(1)).Return(head, nil)

		queue := domain.NewSessionQueue([]*domain.Flashcard{head})
		svc := newTestService(repo)

		_, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingEasy}, now, "UTC")
		assert.ErrorIs(t, err, srs.ErrUnsupportedRating)
		assert.Equal(t, 1, queue.Len())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure leaves the queue for a safe retry", func(t *testing.T) {
		t.Parallel()
		head := dueCard(1, domain.CardModeReview, 5, today)
		repo := new(MockCardRepository)
		repo.On("GetByID", mock.Anything, int64(1)).Return(head, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		queue := domain.NewSessionQueue([]*domain.Flashcard{head})
		svc := newTestService(repo)

		_, err := svc.SubmitRating(context.Background(), queue,
			domain.RatingInput{FlashcardID: 1, Rating: domain.RatingGood}, now, "UTC")
		require.Error(t, err)

		var svcErr *review.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "submit_rating", svcErr.Operation)
		assert.Equal(t, 1, queue.Len())
	})
}
