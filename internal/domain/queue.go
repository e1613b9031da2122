package domain

// QueueState describes whether a session queue still has cards to review.
type QueueState string

// Possible queue states.
const (
	QueueStateActive    QueueState = "active"
	QueueStateExhausted QueueState = "exhausted"
)

// DisplayMode tells the caller which review surface to render for the head
// card. It always mirrors the head card's mode, not a session-wide setting,
// because cards can be promoted or demoted rating-by-rating mid-session.
type DisplayMode string

// Possible display modes.
const (
	DisplayModeLearn  DisplayMode = "learn"
	DisplayModeReview DisplayMode = "review"
)

// SessionQueue holds the ordered working set of one review session. It is
// owned exclusively by the session that created it and must be confined to a
// single logical caller; it carries no locking of its own. Once a card is
// rated and removed it does not reappear in the same session, even if its new
// interval would make it due again.
//
// The struct is JSON-serializable so the session transport can snapshot it
// between the show-card and submit-rating steps.
type SessionQueue struct {
	Cards []*Flashcard `json:"cards"`
}

// NewSessionQueue seeds a queue with the given cards. A queue seeded with no
// cards starts exhausted, which is a valid state.
func NewSessionQueue(cards []*Flashcard) *SessionQueue {
	return &SessionQueue{Cards: cards}
}

// State returns QueueStateActive while cards remain, QueueStateExhausted otherwise.
func (q *SessionQueue) State() QueueState {
	if len(q.Cards) == 0 {
		return QueueStateExhausted
	}
	return QueueStateActive
}

// Len returns the number of cards remaining in the queue.
func (q *SessionQueue) Len() int {
	return len(q.Cards)
}

// Current returns the head card and the display mode derived from it.
// Returns ErrEmptyQueue if the queue is exhausted.
func (q *SessionQueue) Current() (*Flashcard, DisplayMode, error) {
	if len(q.Cards) == 0 {
		return nil, "", ErrEmptyQueue
	}

	head := q.Cards[0]
	mode := DisplayModeReview
	if head.Mode == CardModeLearn {
		mode = DisplayModeLearn
	}
	return head, mode, nil
}

// Advance removes the head card and returns the resulting state.
// Returns ErrEmptyQueue if the queue is already exhausted.
func (q *SessionQueue) Advance() (QueueState, error) {
	if len(q.Cards) == 0 {
		return QueueStateExhausted, ErrEmptyQueue
	}

	q.Cards = q.Cards[1:]
	return q.State(), nil
}
