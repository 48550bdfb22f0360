package match_test

import (
	"testing"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/database"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (match.Store, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return match.New(db), teardown
}

func newStoredMatch(id string) *match.Match {
	tpl, _ := draft.TemplateByID("standard-2ban-2pick")
	now := time.Now().Unix()
	return &match.Match{
		ID:          id,
		State:       match.StateCreated,
		LeagueID:    "league-1",
		RulesetID:   "ruleset-1",
		ChallengeID: "challenge-1",
		SeasonID:    "season-1",
		Players: []match.Player{
			{UserID: "u-a", Side: draft.SideA},
			{UserID: "u-b", Side: draft.SideB},
		},
		Draft:     draft.NewState(tpl),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m := newStoredMatch("m1")
	require.NoError(t, store.Create(m))

	got, err := store.Get("m1")
	require.NoError(t, err)
	assert.Equal(t, match.StateCreated, got.State)
	require.Len(t, got.Players, 2)
	assert.Equal(t, draft.SideA, got.Players[0].Side)
	assert.Equal(t, "standard-2ban-2pick", got.Draft.TemplateID)
	assert.Empty(t, got.ConfirmedBy)
}

func TestGetMissingMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestSaveRoundTripsFullState(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m := newStoredMatch("m1")
	require.NoError(t, store.Create(m))

	m.State = match.StateAwaitingPrecheck
	m.Draft.Actions = append(m.Draft.Actions, draft.Action{
		Type: draft.ActionBanA, AgentID: "anby", UserID: "u-a", Timestamp: time.Now().Unix(),
	})
	m.Evidence.Precheck = append(m.Evidence.Precheck, match.EvidenceRecord{
		ID:         "e1",
		Type:       match.EvidencePrecheck,
		Result:     match.VerdictPass,
		Confidence: map[string]float64{"anby": 0.97},
	})
	m.ConfirmedBy = []string{"u-a"}
	require.NoError(t, store.Save(m))

	got, err := store.Get("m1")
	require.NoError(t, err)
	assert.Equal(t, match.StateAwaitingPrecheck, got.State)
	require.Len(t, got.Draft.Actions, 1)
	assert.Equal(t, "anby", got.Draft.Actions[0].AgentID)
	require.Len(t, got.Evidence.Precheck, 1)
	assert.Equal(t, match.VerdictPass, got.Evidence.Precheck[0].Result)
	assert.InDelta(t, 0.97, got.Evidence.Precheck[0].Confidence["anby"], 1e-9)
	assert.Equal(t, []string{"u-a"}, got.ConfirmedBy)
}

func TestSaveMissingMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	err := store.Save(newStoredMatch("ghost"))
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestGetByState(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	m1 := newStoredMatch("m1")
	m2 := newStoredMatch("m2")
	m2.State = match.StateDrafting
	require.NoError(t, store.Create(m1))
	require.NoError(t, store.Create(m2))

	drafting, err := store.GetByState(match.StateDrafting)
	require.NoError(t, err)
	require.Len(t, drafting, 1)
	assert.Equal(t, "m2", drafting[0].ID)

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClearMatch(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	require.NoError(t, store.Create(newStoredMatch("m1")))
	require.NoError(t, store.Create(newStoredMatch("m2")))

	store.ClearMatch("m1")
	_, err := store.Get("m1")
	assert.ErrorIs(t, err, match.ErrNotFound)

	store.Clear()
	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}
