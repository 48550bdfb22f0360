package referee_test

import (
	"testing"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/metrics"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/notifier"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/pubsub"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/referee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	referee  *referee.Referee
	matches  *match.MockStore
	disputes *dispute.MockStore
	leagues  *league.MockStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		matches:  match.NewMock(),
		disputes: dispute.NewMock(),
		leagues:  league.NewMock(),
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock("test-project"),
		metrics:  metrics.NewMock(),
	}
	require.NoError(t, f.leagues.UpsertRuleset(league.Ruleset{
		ID: "ruleset-1", Name: "Standard", TemplateID: "standard-2ban-2pick",
	}))
	f.referee = referee.New(f.matches, f.disputes, f.leagues, f.notifier, f.metrics, f.pubsub)
	return f
}

func (f *fixture) seedMatch(t *testing.T, state match.State) *match.Match {
	t.Helper()
	tpl, ok := draft.TemplateByID("standard-2ban-2pick")
	require.True(t, ok)
	m := &match.Match{
		ID:        "m1",
		State:     state,
		LeagueID:  "league-1",
		RulesetID: "ruleset-1",
		SeasonID:  "season-1",
		Players: []match.Player{
			{UserID: "anby", Side: draft.SideA},
			{UserID: "billy", Side: draft.SideB},
		},
		Draft:     draft.NewState(tpl),
		CreatedAt: 100,
		UpdatedAt: 100,
	}
	require.NoError(t, f.matches.Create(m))
	return m
}

func (f *fixture) mustGet(t *testing.T, id string) *match.Match {
	t.Helper()
	m, err := f.matches.Get(id)
	require.NoError(t, err)
	return m
}

func TestCheckinAdvancesWhenAllIn(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateCheckin)

	m, err := f.referee.Checkin("m1", "anby", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateCheckin, m.State)

	m, err = f.referee.Checkin("m1", "billy", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateDrafting, m.State)
}

func TestCheckinByStranger(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateCheckin)

	_, err := f.referee.Checkin("m1", "koleda", false)
	assert.ErrorIs(t, err, referee.ErrPlayerNotInMatch)
}

func TestCheckinOutsideCheckinState(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	_, err := f.referee.Checkin("m1", "anby", false)
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestCheckinMissingMatch(t *testing.T) {
	f := newFixture(t)

	_, err := f.referee.Checkin("ghost", "anby", false)
	assert.ErrorIs(t, err, match.ErrNotFound)
}

func TestDraftFullSequenceAdvancesToPrecheck(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateDrafting)

	steps := []struct {
		user  string
		agent string
		typ   draft.ActionType
	}{
		{"anby", "grace", draft.ActionBanA},
		{"billy", "rina", draft.ActionBanB},
		{"anby", "miyabi", draft.ActionPickA},
		{"billy", "nicole", draft.ActionPickB},
		{"billy", "lycaon", draft.ActionPickB},
		{"anby", "soldier11", draft.ActionPickA},
	}
	var m *match.Match
	var err error
	for _, s := range steps {
		m, err = f.referee.ApplyDraftAction("m1", s.user, s.agent, s.typ, false)
		require.NoError(t, err)
	}
	assert.Equal(t, match.StateAwaitingPrecheck, m.State)
	assert.True(t, m.Draft.Complete())
	assert.Equal(t, 6, f.metrics.DraftActions())
}

func TestDraftRejectsWrongTurn(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateDrafting)

	_, err := f.referee.ApplyDraftAction("m1", "billy", "rina", draft.ActionBanB, false)
	assert.ErrorIs(t, err, draft.ErrInvalidAction)

	stored := f.mustGet(t, "m1")
	assert.Empty(t, stored.Draft.Actions)
}

func TestDraftRejectsSeatMismatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateDrafting)

	// billy holds side B and may not submit side A's ban.
	_, err := f.referee.ApplyDraftAction("m1", "billy", "grace", draft.ActionBanA, false)
	assert.ErrorIs(t, err, draft.ErrInvalidAction)
}

func TestDraftOutsideDraftingState(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateCheckin)

	_, err := f.referee.ApplyDraftAction("m1", "anby", "grace", draft.ActionBanA, false)
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestPrecheckQuorumAdvances(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateAwaitingPrecheck)

	m, err := f.referee.RecordPrecheck("m1", match.EvidenceRecord{UserID: "anby", Result: match.VerdictPass}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateAwaitingPrecheck, m.State)

	m, err = f.referee.RecordPrecheck("m1", match.EvidenceRecord{UserID: "billy", Result: match.VerdictPass}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateReadyToStart, m.State)
	assert.Len(t, m.Evidence.Precheck, 2)
	assert.NotEmpty(t, m.Evidence.Precheck[0].ID)
}

func TestPrecheckNonPassNeverAdvances(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateAwaitingPrecheck)

	for _, verdict := range []match.EvidenceVerdict{match.VerdictViolation, match.VerdictLowConf, match.VerdictViolation} {
		m, err := f.referee.RecordPrecheck("m1", match.EvidenceRecord{Result: verdict}, false)
		require.NoError(t, err)
		assert.Equal(t, match.StateAwaitingPrecheck, m.State)
	}
}

func TestPrecheckOutsideGatingStateStoredOnly(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	m, err := f.referee.RecordPrecheck("m1", match.EvidenceRecord{Result: match.VerdictPass}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateInProgress, m.State)
	assert.Len(t, m.Evidence.Precheck, 1)
}

func TestEvidenceStoredOnResolvedMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateResolved)

	m, err := f.referee.RecordPrecheck("m1", match.EvidenceRecord{UserID: "anby", Result: match.VerdictPass}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateResolved, m.State)
	assert.Len(t, m.Evidence.Precheck, 1)

	m, err = f.referee.RecordInrun("m1", match.EvidenceRecord{UserID: "billy", Result: match.VerdictViolation}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateResolved, m.State)
	assert.Len(t, m.Evidence.Inrun, 1)
}

func TestInrunFirstRecordStartsMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateReadyToStart)

	m, err := f.referee.RecordInrun("m1", match.EvidenceRecord{Result: match.VerdictPass}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateInProgress, m.State)

	// Later records keep appending without touching state.
	m, err = f.referee.RecordInrun("m1", match.EvidenceRecord{Result: match.VerdictLowConf}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateInProgress, m.State)
	assert.Len(t, m.Evidence.Inrun, 2)
}

func TestRecordResultWalksForwardFromReady(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateReadyToStart)

	m, err := f.referee.RecordResult("m1", match.ResultProof{MetricType: "score", Value: 38250, ProofURL: "https://proof/1"}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateAwaitingConfirmation, m.State)
	require.NotNil(t, m.Evidence.Result)
	assert.Equal(t, float64(38250), m.Evidence.Result.Value)
	assert.NotZero(t, m.Evidence.Result.SubmittedAt)
}

func TestRecordResultResubmissionOverwrites(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	_, err := f.referee.RecordResult("m1", match.ResultProof{MetricType: "score", Value: 100}, false)
	require.NoError(t, err)

	m, err := f.referee.RecordResult("m1", match.ResultProof{MetricType: "score", Value: 200}, false)
	require.NoError(t, err)
	assert.Equal(t, match.StateAwaitingConfirmation, m.State)
	assert.Equal(t, float64(200), m.Evidence.Result.Value)
}

func TestRecordResultTooEarly(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateDrafting)

	_, err := f.referee.RecordResult("m1", match.ResultProof{MetricType: "score", Value: 1}, false)
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestConfirmQuorumResolves(t *testing.T) {
	f := newFixture(t)
	m := f.seedMatch(t, match.StateAwaitingConfirmation)
	m.Evidence.Result = &match.ResultProof{MetricType: "score", Value: 1, SubmittedAt: 100}
	require.NoError(t, f.matches.Save(m))

	got, err := f.referee.Confirm("m1", "anby", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateAwaitingConfirmation, got.State)

	got, err = f.referee.Confirm("m1", "billy", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateResolved, got.State)
	assert.Equal(t, 1, f.metrics.MatchesResolved())
	assert.Len(t, f.notifier.SendMatchResolvedNotificationCalls, 1)
}

func TestConfirmIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateAwaitingConfirmation)

	_, err := f.referee.Confirm("m1", "anby", false)
	require.NoError(t, err)
	got, err := f.referee.Confirm("m1", "anby", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"anby"}, got.ConfirmedBy)
	assert.Equal(t, match.StateAwaitingConfirmation, got.State)
}

func TestConfirmRetryAfterResolution(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateAwaitingConfirmation)

	_, err := f.referee.Confirm("m1", "anby", false)
	require.NoError(t, err)
	_, err = f.referee.Confirm("m1", "billy", false)
	require.NoError(t, err)

	// A retried confirmation lands after the quorum already resolved the
	// match; it stays a no-op rather than an error.
	got, err := f.referee.Confirm("m1", "anby", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateResolved, got.State)
	assert.Equal(t, []string{"anby", "billy"}, got.ConfirmedBy)
	assert.Equal(t, 1, f.metrics.MatchesResolved())
}

func TestConfirmByStranger(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateAwaitingConfirmation)

	_, err := f.referee.Confirm("m1", "koleda", false)
	assert.ErrorIs(t, err, referee.ErrPlayerNotInMatch)
}

func TestOpenDisputeFreezesMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	d, err := f.referee.OpenDispute("m1", "anby", "opponent ran a banned agent", false)
	require.NoError(t, err)
	assert.Equal(t, dispute.StatusOpen, d.Status)
	assert.Equal(t, "m1", d.MatchID)

	assert.Equal(t, match.StateDisputed, f.mustGet(t, "m1").State)
	assert.Equal(t, 1, f.metrics.DisputesOpened())
	assert.Len(t, f.notifier.SendDisputeOpenedNotificationCalls, 1)
}

func TestOpenDisputeOnTerminalMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateResolved)

	_, err := f.referee.OpenDispute("m1", "anby", "too late", false)
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestSecondDisputeOnDisputedMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	_, err := f.referee.OpenDispute("m1", "anby", "first", false)
	require.NoError(t, err)
	_, err = f.referee.OpenDispute("m1", "billy", "second", false)
	require.NoError(t, err)

	open, err := f.disputes.ListOpen()
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

func TestResolveDisputeResolvesMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	d, err := f.referee.OpenDispute("m1", "anby", "screen tearing on proof", false)
	require.NoError(t, err)

	resolved, err := f.referee.ResolveDispute(d.ID, "proof re-reviewed, result stands", true, false)
	require.NoError(t, err)
	assert.Equal(t, dispute.StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, match.StateResolved, f.mustGet(t, "m1").State)
}

func TestResolveDisputeRejection(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	d, err := f.referee.OpenDispute("m1", "anby", "baseless", false)
	require.NoError(t, err)

	rejected, err := f.referee.ResolveDispute(d.ID, "no violation found", false, false)
	require.NoError(t, err)
	assert.Equal(t, dispute.StatusRejected, rejected.Status)
	assert.Equal(t, match.StateResolved, f.mustGet(t, "m1").State)
}

func TestResolveDisputeTwice(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateInProgress)

	d, err := f.referee.OpenDispute("m1", "anby", "reason", false)
	require.NoError(t, err)
	_, err = f.referee.ResolveDispute(d.ID, "done", true, false)
	require.NoError(t, err)

	_, err = f.referee.ResolveDispute(d.ID, "again", true, false)
	assert.ErrorIs(t, err, dispute.ErrAlreadyResolved)
}

func TestCancelMatch(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateCheckin)

	m, err := f.referee.Cancel("m1", false)
	require.NoError(t, err)
	assert.Equal(t, match.StateCanceled, m.State)

	_, err = f.referee.Cancel("m1", false)
	assert.ErrorIs(t, err, match.ErrInvalidTransition)
}

func TestOperationsObserveDuration(t *testing.T) {
	f := newFixture(t)
	f.seedMatch(t, match.StateCheckin)

	_, err := f.referee.Checkin("m1", "anby", false)
	require.NoError(t, err)
	_, err = f.referee.Cancel("m1", false)
	require.NoError(t, err)

	assert.Len(t, f.metrics.OperationDurations(), 2)
}

func TestExpireStaleSweepsPreMatchStates(t *testing.T) {
	f := newFixture(t)
	stale := f.seedMatch(t, match.StateCheckin)
	stale.UpdatedAt = 50
	require.NoError(t, f.matches.Save(stale))

	fresh := &match.Match{ID: "m2", State: match.StateDrafting, UpdatedAt: 500,
		Players: []match.Player{{UserID: "nicole", Side: draft.SideA}, {UserID: "nekomata", Side: draft.SideB}}}
	require.NoError(t, f.matches.Create(fresh))

	running := &match.Match{ID: "m3", State: match.StateInProgress, UpdatedAt: 10,
		Players: []match.Player{{UserID: "grace", Side: draft.SideA}, {UserID: "rina", Side: draft.SideB}}}
	require.NoError(t, f.matches.Create(running))

	expired, err := f.referee.ExpireStale(100, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, expired)
	assert.Equal(t, match.StateExpired, f.mustGet(t, "m1").State)
	assert.Equal(t, match.StateDrafting, f.mustGet(t, "m2").State)
	assert.Equal(t, match.StateInProgress, f.mustGet(t, "m3").State)
}
