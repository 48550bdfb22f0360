package match

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a target state is not in the
// allow-list for the match's current state.
var ErrInvalidTransition = errors.New("invalid match state transition")

// transitions is the total allow-list table: every non-terminal state has an
// explicit entry, and any target not listed is rejected. RESOLVED, CANCELED
// and EXPIRED are terminal. DISPUTED is reachable from every non-terminal
// state so a contest can pre-empt whatever was in flight.
var transitions = map[State][]State{
	StateCreated:              {StateCheckin, StateCanceled, StateExpired, StateDisputed},
	StateCheckin:              {StateDrafting, StateCanceled, StateExpired, StateDisputed},
	StateDrafting:             {StateAwaitingPrecheck, StateCanceled, StateExpired, StateDisputed},
	StateAwaitingPrecheck:     {StateReadyToStart, StateCanceled, StateDisputed},
	StateReadyToStart:         {StateInProgress, StateCanceled, StateDisputed},
	StateInProgress:           {StateAwaitingResultUpload, StateCanceled, StateDisputed},
	StateAwaitingResultUpload: {StateAwaitingConfirmation, StateDisputed},
	StateAwaitingConfirmation: {StateResolved, StateDisputed},
	StateDisputed:             {StateResolved, StateCanceled},
	StateResolved:             {},
	StateCanceled:             {},
	StateExpired:              {},
}

// CanTransition reports whether the table allows from → to.
func CanTransition(from, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves the match to next if the table allows it, bumping
// UpdatedAt. This is the only sanctioned way to change a match's state; every
// higher-level operation goes through it.
func (m *Match) Transition(next State) error {
	if !CanTransition(m.State, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.State, next)
	}
	m.State = next
	m.UpdatedAt = time.Now().Unix()
	return nil
}

// Terminal reports whether the state has no outbound transitions.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// States returns every state known to the table. Useful for exhaustive
// transition tests.
func States() []State {
	return []State{
		StateCreated, StateCheckin, StateDrafting, StateAwaitingPrecheck,
		StateReadyToStart, StateInProgress, StateAwaitingResultUpload,
		StateAwaitingConfirmation, StateDisputed, StateResolved,
		StateCanceled, StateExpired,
	}
}
