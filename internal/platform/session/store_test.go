package session_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langcontrol/langcontrol-api/internal/domain"
	"github.com/langcontrol/langcontrol-api/internal/platform/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testQueue() *domain.SessionQueue {
	return domain.NewSessionQueue([]*domain.Flashcard{
		{ID: 1, DeckID: 1, Front: "front", Back: "back", Mode: domain.CardModeLearn},
	})
}

func TestStoreCreateAndGet(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())
	now := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	sess := store.Create(42, "America/Los_Angeles", testQueue(), now)
	require.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, int64(42), sess.DeckID)
	assert.Equal(t, "America/Los_Angeles", sess.TimezoneID)
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(sess.ID, now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStoreGetUnknownToken(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())

	_, err := store.Get(uuid.New(), time.Now().UTC())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestStoreGetExpired(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())
	now := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	sess := store.Create(1, "UTC", testQueue(), now)

	_, err := store.Get(sess.ID, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestStoreGetRefreshesIdleTimer(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())
	now := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	sess := store.Create(1, "UTC", testQueue(), now)

	// Touching the session 50 minutes in keeps it alive past the original
	// expiry point.
	_, err := store.Get(sess.ID, now.Add(50*time.Minute))
	require.NoError(t, err)

	_, err = store.Get(sess.ID, now.Add(100*time.Minute))
	assert.NoError(t, err)
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())
	now := time.Now().UTC()

	sess := store.Create(1, "UTC", testQueue(), now)
	store.Delete(sess.ID)

	_, err := store.Get(sess.ID, now)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	// Deleting an unknown token is a no-op.
	store.Delete(uuid.New())
}

func TestStorePurge(t *testing.T) {
	t.Parallel()
	store := session.NewStore(time.Hour, testLogger())
	now := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	stale1 := store.Create(1, "UTC", testQueue(), now)
	stale2 := store.Create(2, "UTC", testQueue(), now)
	fresh := store.Create(3, "UTC", testQueue(), now.Add(90*time.Minute))

	removed := store.Purge(now.Add(2 * time.Hour))
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, store.Len())

	_, err := store.Get(stale1.ID, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = store.Get(stale2.ID, now.Add(2*time.Hour))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = store.Get(fresh.ID, now.Add(2*time.Hour))
	assert.NoError(t, err)
}

func TestStoreFallsBackToDefaultTTL(t *testing.T) {
	t.Parallel()
	store := session.NewStore(0, testLogger())
	now := time.Date(2023, 3, 14, 12, 0, 0, 0, time.UTC)

	sess := store.Create(1, "UTC", testQueue(), now)

	_, err := store.Get(sess.ID, now.Add(session.DefaultTTL-time.Minute))
	assert.NoError(t, err)
}
