package dispute_test

import (
	"testing"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/database"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (dispute.Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return dispute.New(db), teardown
}

func TestCreateAndGetDispute(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	d := &dispute.Dispute{
		ID:        "d1",
		MatchID:   "m1",
		OpenedBy:  "u-a",
		Reason:    "opponent used a banned agent",
		Status:    dispute.StatusOpen,
		CreatedAt: time.Now().Unix(),
	}
	require.NoError(t, store.Create(d))

	got, err := store.Get("d1")
	require.NoError(t, err)
	assert.Equal(t, dispute.StatusOpen, got.Status)
	assert.Equal(t, "m1", got.MatchID)
	assert.Nil(t, got.ResolvedAt)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, dispute.ErrNotFound)
}

func TestSaveResolution(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	d := &dispute.Dispute{ID: "d1", MatchID: "m1", OpenedBy: "u-a", Reason: "r", Status: dispute.StatusOpen, CreatedAt: 1}
	require.NoError(t, store.Create(d))

	now := time.Now().Unix()
	d.Status = dispute.StatusResolved
	d.Decision = "side A forfeits"
	d.ResolvedAt = &now
	require.NoError(t, store.Save(d))

	got, err := store.Get("d1")
	require.NoError(t, err)
	assert.Equal(t, dispute.StatusResolved, got.Status)
	assert.Equal(t, "side A forfeits", got.Decision)
	require.NotNil(t, got.ResolvedAt)
	assert.Equal(t, now, *got.ResolvedAt)
}

func TestListOpenAndByMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	now := time.Now().Unix()
	require.NoError(t, store.Create(&dispute.Dispute{ID: "d1", MatchID: "m1", OpenedBy: "u-a", Reason: "r", Status: dispute.StatusOpen, CreatedAt: now}))
	require.NoError(t, store.Create(&dispute.Dispute{ID: "d2", MatchID: "m1", OpenedBy: "u-b", Reason: "r", Status: dispute.StatusResolved, CreatedAt: now}))
	require.NoError(t, store.Create(&dispute.Dispute{ID: "d3", MatchID: "m2", OpenedBy: "u-c", Reason: "r", Status: dispute.StatusOpen, CreatedAt: now}))

	open, err := store.ListOpen()
	require.NoError(t, err)
	assert.Len(t, open, 2)

	forMatch, err := store.ListByMatch("m1")
	require.NoError(t, err)
	assert.Len(t, forMatch, 2)
}
