package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/domain/srs"
	"github.com/langcontrol/langcontrol-api/internal/platform/logger"
	"github.com/langcontrol/langcontrol-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	cardRepo  CardRepository
	scheduler srs.Service
	logger    *slog.Logger

	// rng drives the advisory shuffle of the due set. Guarded by rngMu since
	// concurrent sessions for different decks may start simultaneously.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a reviewServiceImpl.
type Option func(*reviewServiceImpl)

// WithRand overrides the shuffle source, letting tests pin a deterministic
// card order.
func WithRand(rng *rand.Rand) Option {
	return func(s *reviewServiceImpl) {
		s.rng = rng
	}
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	cardRepo CardRepository,
	scheduler srs.Service,
	log *slog.Logger,
	opts ...Option,
) ReviewService {
	if cardRepo == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardRepo cannot be nil")
	}
	if scheduler == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &reviewServiceImpl{
		cardRepo:  cardRepo,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession implements ReviewService.StartSession.
func (s *reviewServiceImpl) StartSession(
	ctx context.Context,
	deckID int64,
	timezoneID string,
	nowUTC time.Time,
	limit int,
) (*domain.SessionQueue, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if deckID <= 0 {
		return nil, fmt.Errorf("%w: deck ID must be positive", ErrInvalidSessionRequest)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidSessionRequest)
	}

	today, err := srs.Today(nowUTC, timezoneID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.cardRepo.ListDeckCards(ctx, deckID)
	if err != nil {
		log.Error("failed to load due candidates",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", deckID))
		return nil, NewStartSessionError("failed to load due candidates", err)
	}

	s.rngMu.Lock()
	due := selectDue(candidates, today, limit, s.rng)
	s.rngMu.Unlock()

	log.Debug("review session selected",
		slog.Int64("deck_id", deckID),
		slog.Int("candidates", len(candidates)),
		slog.Int("due", len(due)),
		slog.Time("today", today))

	return domain.NewSessionQueue(due), nil
}

// SubmitRating implements ReviewService.SubmitRating.
func (s *reviewServiceImpl) SubmitRating(
	ctx context.Context,
	queue *domain.SessionQueue,
	input domain.RatingInput,
	nowUTC time.Time,
	timezoneID string,
) (NextAction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if queue == nil {
		return "", ErrNilQueue
	}

	if err := input.Validate(); err != nil {
		log.Warn("invalid rating input",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", input.FlashcardID))
		return "", fmt.Errorf("%w: %v", ErrInvalidRatingInput, err)
	}

	head, _, err := queue.Current()
	if err != nil {
		// Rating an exhausted queue is a session-protocol violation.
		return "", err
	}

	if head.ID != input.FlashcardID {
		log.Warn("stale rating submission",
			slog.Int64("flashcard_id", input.FlashcardID),
			slog.Int64("head_card_id", head.ID))
		return "", fmt.Errorf("%w: got card %d, head is %d",
			ErrStaleRating, input.FlashcardID, head.ID)
	}

	err = s.runInTransaction(ctx, func(ctx context.Context, cardRepo CardRepository) error {
		card, err := cardRepo.GetByID(ctx, input.FlashcardID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				log.Warn("card not found for rating",
					slog.Int64("flashcard_id", input.FlashcardID))
				return store.ErrCardNotFound
			}
			return fmt.Errorf("failed to get card: %w", err)
		}

		updated, err := s.scheduler.ApplyRating(card, input.Rating, nowUTC, timezoneID)
		if err != nil {
			return err
		}

		if err := cardRepo.Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to save card schedule: %w", err)
		}

		log.Debug("rating applied",
			slog.Int64("flashcard_id", updated.ID),
			slog.String("rating", string(input.Rating)),
			slog.String("mode", string(updated.Mode)),
			slog.Float64("interval_days", updated.CurrentIntervalDays),
			slog.Time("next_review_at", updated.NextReviewAt))
		return nil
	})
	if err != nil {
		// The queue is intentionally left untouched: the rating was not
		// applied and the caller may retry the same submission.
		if errors.Is(err, store.ErrCardNotFound) ||
			errors.Is(err, srs.ErrUnsupportedRating) ||
			errors.Is(err, srs.ErrInvalidTimezone) {
			return "", err
		}
		log.Error("failed to submit rating",
			slog.String("error", err.Error()),
			slog.Int64("flashcard_id", input.FlashcardID))
		return "", NewSubmitRatingError("failed to submit rating", err)
	}

	state, err := queue.Advance()
	if err != nil {
		return "", err
	}
	if state == domain.QueueStateExhausted {
		return NextActionComplete, nil
	}
	return NextActionContinue, nil
}

// runInTransaction runs the given function against a transactional card
// repository. Repositories without an underlying *sql.DB (in-memory fakes)
// run the function directly.
func (s *reviewServiceImpl) runInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, cardRepo CardRepository) error,
) error {
	db := s.cardRepo.DB()
	if db == nil {
		return fn(ctx, s.cardRepo)
	}

	return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.cardRepo.WithTx(tx))
	})
}
