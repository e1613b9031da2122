package review

import (
	"math/rand"
	"time"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// isDue reports whether a card should be reviewed on the given local
// calendar day. Cards that have never been rated are always due.
func isDue(card *domain.Flashcard, today time.Time) bool {
	if card.IsNew() {
		return true
	}
	return !card.NextReviewDate.After(today)
}

// selectDue picks the subset of candidate cards that are due on the given
// day, shuffles their order, and truncates the result to limit. The ordering
// is advisory: no stable tie-break is required or provided. An empty result
// is a valid outcome.
func selectDue(
	candidates []*domain.Flashcard,
	today time.Time,
	limit int,
	rng *rand.Rand,
) []*domain.Flashcard {
	due := make([]*domain.Flashcard, 0, len(candidates))
	for _, card := range candidates {
		if isDue(card, today) {
			due = append(due, card)
		}
	}

	rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})

	if len(due) > limit {
		due = due[:limit]
	}
	return due
}
