package match_test

import (
	"testing"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTableIsTotal(t *testing.T) {
	// Every (from, to) pair either succeeds and lands on `to`, or fails
	// with ErrInvalidTransition and leaves the state untouched.
	for _, from := range match.States() {
		for _, to := range match.States() {
			m := &match.Match{ID: "m1", State: from}
			err := m.Transition(to)
			if match.CanTransition(from, to) {
				require.NoError(t, err, "%s -> %s should be allowed", from, to)
				assert.Equal(t, to, m.State)
				assert.NotZero(t, m.UpdatedAt)
			} else {
				require.ErrorIs(t, err, match.ErrInvalidTransition, "%s -> %s should be rejected", from, to)
				assert.Equal(t, from, m.State)
			}
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []match.State{match.StateResolved, match.StateCanceled, match.StateExpired} {
		assert.True(t, terminal.Terminal())
		for _, to := range match.States() {
			assert.False(t, match.CanTransition(terminal, to), "%s must not leave %s", terminal, to)
		}
	}
}

func TestDisputedReachableFromEveryNonTerminalState(t *testing.T) {
	for _, from := range match.States() {
		if from.Terminal() || from == match.StateDisputed {
			continue
		}
		assert.True(t, match.CanTransition(from, match.StateDisputed), "%s must allow DISPUTED", from)
	}
}

func TestHappyPathIsReachableFromCreated(t *testing.T) {
	m := &match.Match{ID: "m1", State: match.StateCreated}
	path := []match.State{
		match.StateCheckin, match.StateDrafting, match.StateAwaitingPrecheck,
		match.StateReadyToStart, match.StateInProgress,
		match.StateAwaitingResultUpload, match.StateAwaitingConfirmation,
		match.StateResolved,
	}
	for _, next := range path {
		require.NoError(t, m.Transition(next))
	}
	assert.True(t, m.State.Terminal())
}
