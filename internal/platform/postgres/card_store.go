package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/platform/logger"
	"github.com/langcontrol/langcontrol-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, deck_id, front, back, source_language, target_language,
		mode, last_review_at, current_interval_days, next_review_at, next_review_date,
		created_at, updated_at`

// Create implements store.CardStore.Create
// It saves a new flashcard and assigns its database-generated ID.
// Returns validation errors from the domain Flashcard if data is invalid.
// Returns store.ErrInvalidEntity if the deck reference is violated.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", card.DeckID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO cards (deck_id, front, back, source_language, target_language,
			mode, last_review_at, current_interval_days, next_review_at, next_review_date,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		card.DeckID,
		card.Front,
		card.Back,
		card.SourceLanguage,
		card.TargetLanguage,
		card.Mode,
		nullableTime(card.LastReviewAt),
		card.CurrentIntervalDays,
		card.NextReviewAt,
		card.NextReviewDate,
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&card.ID)

	if err != nil {
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", card.DeckID))
		return mapError(err)
	}

	log.Debug("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("deck_id", card.DeckID))
	return nil
}

// GetByID implements store.CardStore.GetByID
// It retrieves a flashcard by its unique ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1
	`

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.Int64("card_id", id))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card by ID",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return nil, mapError(err)
	}

	return card, nil
}

// ListDeckCards implements store.CardStore.ListDeckCards
// It retrieves all flashcards owned by a deck, the candidate set for due
// selection. An empty deck yields an empty slice, not an error.
func (s *PostgresCardStore) ListDeckCards(ctx context.Context, deckID int64) ([]*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE deck_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list deck cards",
			slog.String("error", err.Error()),
			slog.Int64("deck_id", deckID))
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Flashcard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			log.Error("failed to scan card row",
				slog.String("error", err.Error()),
				slog.Int64("deck_id", deckID))
			return nil, mapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	log.Debug("listed deck cards",
		slog.Int64("deck_id", deckID),
		slog.Int("count", len(cards)))
	return cards, nil
}

// Update implements store.CardStore.Update
// It persists a card's current state including all scheduling fields in a
// single-row write. Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("card_id", card.ID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET front = $1, back = $2, source_language = $3, target_language = $4,
			mode = $5, last_review_at = $6, current_interval_days = $7,
			next_review_at = $8, next_review_date = $9, updated_at = $10
		WHERE id = $11
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.Front,
		card.Back,
		card.SourceLanguage,
		card.TargetLanguage,
		card.Mode,
		nullableTime(card.LastReviewAt),
		card.CurrentIntervalDays,
		card.NextReviewAt,
		card.NextReviewDate,
		card.UpdatedAt,
		card.ID,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", card.ID))
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		log.Debug("card not found during update", slog.Int64("card_id", card.ID))
		return store.ErrCardNotFound
	}

	log.Debug("card schedule updated",
		slog.Int64("card_id", card.ID),
		slog.String("mode", string(card.Mode)),
		slog.Float64("interval_days", card.CurrentIntervalDays))
	return nil
}

// Delete implements store.CardStore.Delete
// It removes a flashcard by its ID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.Int64("card_id", id))
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return store.ErrCardNotFound
	}

	log.Debug("card deleted", slog.Int64("card_id", id))
	return nil
}

// WithTx implements store.CardStore.WithTx
// It returns a CardStore bound to the provided transaction.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCard.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var lastReview sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.SourceLanguage,
		&card.TargetLanguage,
		&card.Mode,
		&lastReview,
		&card.CurrentIntervalDays,
		&card.NextReviewAt,
		&card.NextReviewDate,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReview.Valid {
		card.LastReviewAt = lastReview.Time.UTC()
	}
	card.NextReviewAt = card.NextReviewAt.UTC()
	card.NextReviewDate = domain.DateOf(card.NextReviewDate)

	return &card, nil
}

// nullableTime maps the zero time to SQL NULL for never-reviewed cards.
func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
