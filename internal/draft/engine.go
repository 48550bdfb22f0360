package draft

import (
	"errors"
	"fmt"
)

var (
	// ErrComplete is returned when an action is submitted after the
	// sequence has been exhausted.
	ErrComplete = errors.New("draft already complete")
	// ErrInvalidAction is returned for out-of-turn, wrong-side, disallowed
	// or duplicate submissions.
	ErrInvalidAction = errors.New("invalid draft action")
)

// NextExpected returns the action type the draft expects next. The second
// return value is false once the sequence is exhausted. This is purely a
// function of the log length, never of game content.
func (s *State) NextExpected() (ActionType, bool) {
	if s.Complete() {
		return "", false
	}
	return s.Sequence[len(s.Actions)], true
}

// Validate checks a proposed action against the draft log. actorSide is the
// side the submitting user occupies in the match; the caller resolves it from
// the match roster before calling in.
func (s *State) Validate(policy AgentPolicy, actorSide Side, act Action) error {
	expected, ok := s.NextExpected()
	if !ok {
		return ErrComplete
	}
	if !act.Type.Known() || act.Type != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidAction, expected, act.Type)
	}
	if act.Type.Side() != actorSide {
		return fmt.Errorf("%w: action %s is not side %s's turn", ErrInvalidAction, act.Type, actorSide)
	}
	if !policy.Allows(act.AgentID) {
		return fmt.Errorf("%w: agent %s is not allowed by the ruleset", ErrInvalidAction, act.AgentID)
	}
	// Bans and picks share a single no-repeat namespace: an agent that
	// appears anywhere in the log is gone.
	for _, prior := range s.Actions {
		if prior.AgentID == act.AgentID {
			return fmt.Errorf("%w: agent %s was already selected", ErrInvalidAction, act.AgentID)
		}
	}
	if act.Type.Kind() == KindPick && s.UniqueMode == UniqueGlobal {
		for _, prior := range s.Actions {
			if prior.Type.Kind() == KindPick && prior.AgentID == act.AgentID {
				return fmt.Errorf("%w: agent %s was already picked", ErrInvalidAction, act.AgentID)
			}
		}
	}
	return nil
}

// Apply appends a validated action to the log. Callers must have run
// Validate first; Apply only guards the prefix invariant.
func (s *State) Apply(act Action) error {
	if s.Complete() {
		return ErrComplete
	}
	s.Actions = append(s.Actions, act)
	return nil
}
