package review

import (
	"context"
	"database/sql"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/store"
)

// CardRepository defines the interface for repositories that can provide
// flashcard data and support transactions.
type CardRepository interface {
	// GetByID retrieves a flashcard by its unique ID.
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)

	// ListDeckCards retrieves all flashcards owned by a deck.
	ListDeckCards(ctx context.Context, deckID int64) ([]*domain.Flashcard, error)

	// Update persists a card's state in a single-row write.
	Update(ctx context.Context, card *domain.Flashcard) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) CardRepository

	// DB returns the underlying database connection. In-memory fakes may
	// return nil, in which case the service skips transaction handling.
	DB() *sql.DB
}

// NewCardRepositoryAdapter creates a new adapter that allows a store.CardStore
// to be used where a CardRepository is expected.
func NewCardRepositoryAdapter(cardStore store.CardStore, db *sql.DB) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: cardStore,
		db:        db,
	}
}

// cardRepositoryAdapter adapts a store.CardStore to the CardRepository interface.
type cardRepositoryAdapter struct {
	cardStore store.CardStore
	db        *sql.DB
}

// GetByID implements CardRepository.GetByID
func (a *cardRepositoryAdapter) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	return a.cardStore.GetByID(ctx, id)
}

// ListDeckCards implements CardRepository.ListDeckCards
func (a *cardRepositoryAdapter) ListDeckCards(ctx context.Context, deckID int64) ([]*domain.Flashcard, error) {
	return a.cardStore.ListDeckCards(ctx, deckID)
}

// Update implements CardRepository.Update
func (a *cardRepositoryAdapter) Update(ctx context.Context, card *domain.Flashcard) error {
	return a.cardStore.Update(ctx, card)
}

// WithTx implements CardRepository.WithTx
func (a *cardRepositoryAdapter) WithTx(tx *sql.Tx) CardRepository {
	return &cardRepositoryAdapter{
		cardStore: a.cardStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements CardRepository.DB
func (a *cardRepositoryAdapter) DB() *sql.DB {
	return a.db
}
