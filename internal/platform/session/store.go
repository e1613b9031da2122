// Package session implements the session transport collaborator: it carries a
// review session's queue state between the show-card step and the
// submit-rating step. The backing store is an in-memory map keyed by opaque
// session tokens; sessions are short-lived and discarded once the queue
// empties, expires, or is abandoned.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/langcontrol/langcontrol-api/internal/domain"
)

// Common session store errors.
var (
	// ErrSessionNotFound is returned when a session token is unknown or the
	// session has expired.
	ErrSessionNotFound = errors.New("review session not found")
)

// DefaultTTL is how long an idle session is kept before it can be purged.
const DefaultTTL = 2 * time.Hour

// Session holds the state of one review session. The queue inside is owned
// exclusively by this session and must only ever be driven by one logical
// caller at a time; the store serializes access to the map, not to the queue.
type Session struct {
	ID         uuid.UUID            `json:"id"`
	DeckID     int64                `json:"deck_id"`
	TimezoneID string               `json:"timezone_id"`
	Queue      *domain.SessionQueue `json:"queue"`
	CreatedAt  time.Time            `json:"created_at"`
	LastSeenAt time.Time            `json:"last_seen_at"`
}

// Store is an in-memory session store. It is safe for concurrent use by
// multiple goroutines serving different sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	logger   *slog.Logger
}

// NewStore creates a session store with the given idle TTL.
// A non-positive ttl falls back to DefaultTTL.
// If logger is nil, a default logger will be used.
func NewStore(ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		logger:   logger.With(slog.String("component", "session_store")),
	}
}

// Create registers a new session for the given deck, time zone, and seeded
// queue, and returns it with a freshly generated token.
func (s *Store) Create(deckID int64, timezoneID string, queue *domain.SessionQueue, now time.Time) *Session {
	sess := &Session{
		ID:         uuid.New(),
		DeckID:     deckID,
		TimezoneID: timezoneID,
		Queue:      queue,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("review session created",
		slog.String("session_id", sess.ID.String()),
		slog.Int64("deck_id", deckID),
		slog.Int("queue_len", queue.Len()))
	return sess
}

// Get returns the session for the given token and refreshes its idle timer.
// Returns ErrSessionNotFound if the token is unknown or the session expired.
func (s *Store) Get(id uuid.UUID, now time.Time) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	if now.Sub(sess.LastSeenAt) > s.ttl {
		delete(s.sessions, id)
		s.logger.Debug("review session expired",
			slog.String("session_id", id.String()))
		return nil, ErrSessionNotFound
	}

	sess.LastSeenAt = now
	return sess, nil
}

// Delete discards a session. Discarding has no effect on already-persisted
// card schedules. Deleting an unknown token is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Purge removes all sessions idle longer than the TTL and returns how many
// were removed.
func (s *Store) Purge(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeenAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug("purged expired review sessions", slog.Int("count", removed))
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
