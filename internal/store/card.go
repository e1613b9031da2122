package store

import (
	"context"
	"database/sql"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// CardStore defines the interface for flashcard persistence.
//
// The review engine only requires that a card and its scheduling fields can
// be loaded and saved atomically per card; deck and account lifecycle are
// managed by external collaborators.
type CardStore interface {
	// Create saves a new flashcard and assigns its ID.
	// Returns validation errors if the card data is invalid.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)

	// ListDeckCards retrieves all flashcards owned by a deck, the candidate
	// set for due selection. The ordering is unspecified; the selector
	// shuffles the due subset anyway.
	ListDeckCards(ctx context.Context, deckID int64) ([]*domain.Flashcard, error)

	// Update persists a card's current state, including all scheduling
	// fields. This is the single-card atomic write unit of the review
	// engine: either the new schedule is durably written or the update
	// reports an error and nothing is applied.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a flashcard by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a CardStore bound to the provided transaction, so that
	// multiple operations can execute atomically. The transaction is created
	// and managed by the caller, typically through RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}
