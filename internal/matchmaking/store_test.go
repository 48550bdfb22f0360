package matchmaking_test

import (
	"testing"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/database"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/matchmaking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) matchmaking.TicketStore {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return matchmaking.NewStore(db)
}

func newTicket(id, queueID, userID string, createdAt int64) *matchmaking.Ticket {
	return &matchmaking.Ticket{
		ID:        id,
		QueueID:   queueID,
		UserID:    userID,
		Status:    matchmaking.StatusWaiting,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestTicketRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	ticket := newTicket("t1", "queue-1", "anby", 100)
	require.NoError(t, store.Create(ticket))

	got, err := store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, ticket, got)
}

func TestGetMissingTicket(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, matchmaking.ErrNotFound)
}

func TestSaveTicketStatusAndMatch(t *testing.T) {
	store := setupTestStore(t)

	ticket := newTicket("t1", "queue-1", "anby", 100)
	require.NoError(t, store.Create(ticket))

	ticket.Status = matchmaking.StatusMatchFound
	ticket.MatchID = "m1"
	ticket.UpdatedAt = 200
	require.NoError(t, store.Save(ticket))

	got, err := store.Get("t1")
	require.NoError(t, err)
	assert.Equal(t, matchmaking.StatusMatchFound, got.Status)
	assert.Equal(t, "m1", got.MatchID)
	assert.Equal(t, int64(200), got.UpdatedAt)
}

func TestSaveMissingTicket(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(newTicket("ghost", "queue-1", "anby", 100))
	assert.ErrorIs(t, err, matchmaking.ErrNotFound)
}

func TestDeleteTicket(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Create(newTicket("t1", "queue-1", "anby", 100)))
	require.NoError(t, store.Delete("t1"))

	_, err := store.Get("t1")
	assert.ErrorIs(t, err, matchmaking.ErrNotFound)
}

func TestFindByUser(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Create(newTicket("t1", "queue-1", "anby", 100)))
	require.NoError(t, store.Create(newTicket("t2", "queue-2", "anby", 110)))

	got, err := store.FindByUser("queue-2", "anby")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)

	_, err = store.FindByUser("queue-1", "billy")
	assert.ErrorIs(t, err, matchmaking.ErrNotFound)
}

func TestFindWaitingPrefersOldestAndExcludesCaller(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Create(newTicket("t1", "queue-1", "anby", 100)))
	require.NoError(t, store.Create(newTicket("t2", "queue-1", "billy", 50)))
	matched := newTicket("t3", "queue-1", "nicole", 10)
	matched.Status = matchmaking.StatusMatchFound
	matched.MatchID = "m1"
	require.NoError(t, store.Create(matched))

	got, err := store.FindWaiting("queue-1", "koleda")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)

	// The caller's own ticket never counts as an opponent.
	got, err = store.FindWaiting("queue-1", "billy")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestFindWaitingEmptyQueue(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.FindWaiting("queue-1", "anby")
	assert.ErrorIs(t, err, matchmaking.ErrNotFound)
}
