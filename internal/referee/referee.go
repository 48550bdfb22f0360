package referee

import (
	"fmt"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/dispute"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func (r *Referee) observeDuration(start time.Time) {
	r.metrics.ObserveOperationDuration(time.Since(start).Seconds())
}

// Checkin marks a player's seat as checked in. Once both seats are in, the
// match moves to DRAFTING.
func (r *Referee) Checkin(matchID, userID string, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}
	if m.State != match.StateCheckin {
		return nil, fmt.Errorf("%w: cannot check in while %s", match.ErrInvalidTransition, m.State)
	}
	player, ok := m.PlayerByUser(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInMatch, userID)
	}

	player.CheckedIn = true
	if m.AllCheckedIn() {
		if err := m.Transition(match.StateDrafting); err != nil {
			return nil, err
		}
		log.Info("All players checked in, draft begins", "matchID", m.ID)
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	r.publishStateChange(m, dryRun)
	return m, nil
}

// ApplyDraftAction validates and appends one ban or pick. The actor's side
// comes from the match roster, never from the request. A completed draft
// moves the match to AWAITING_PRECHECK.
func (r *Referee) ApplyDraftAction(matchID, userID, agentID string, actionType draft.ActionType, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}
	if m.State != match.StateDrafting {
		return nil, fmt.Errorf("%w: cannot draft while %s", match.ErrInvalidTransition, m.State)
	}
	player, ok := m.PlayerByUser(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInMatch, userID)
	}
	ruleset, err := r.leagues.GetRuleset(m.RulesetID)
	if err != nil {
		return nil, err
	}

	act := draft.Action{
		Type:      actionType,
		AgentID:   agentID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}
	if err := m.Draft.Validate(ruleset.Policy, player.Side, act); err != nil {
		return nil, err
	}
	if err := m.Draft.Apply(act); err != nil {
		return nil, err
	}
	r.metrics.IncDraftActions()
	log.Info("Draft action applied", "matchID", m.ID, "userID", userID, "type", actionType, "agentID", agentID)

	if m.Draft.Complete() {
		if err := m.Transition(match.StateAwaitingPrecheck); err != nil {
			return nil, err
		}
		log.Info("Draft complete", "matchID", m.ID)
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	r.publishStateChange(m, dryRun)
	return m, nil
}

// RecordPrecheck appends one lobby screening verdict. Reaching the PASS
// quorum while the match is AWAITING_PRECHECK clears it to READY_TO_START.
// Records arriving in any other state, terminal ones included, are stored
// as evidence and never advance the match.
func (r *Referee) RecordPrecheck(matchID string, rec match.EvidenceRecord, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}

	rec.ID = uuid.New().String()
	rec.Type = match.EvidencePrecheck
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.Evidence.Precheck = append(m.Evidence.Precheck, rec)
	r.metrics.IncEvidenceRecorded()

	if m.State == match.StateAwaitingPrecheck && m.PrecheckPasses() >= PrecheckQuorum {
		if err := m.Transition(match.StateReadyToStart); err != nil {
			return nil, err
		}
		log.Info("Precheck quorum reached", "matchID", m.ID, "passes", m.PrecheckPasses())
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	r.publishStateChange(m, dryRun)
	return m, nil
}

// RecordInrun appends one live screening verdict. The first in-run record
// on a READY_TO_START match is the signal the run actually began and moves
// it to IN_PROGRESS. Late records are stored without advancing the match.
func (r *Referee) RecordInrun(matchID string, rec match.EvidenceRecord, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}

	rec.ID = uuid.New().String()
	rec.Type = match.EvidenceInrun
	if rec.Timestamp == 0 {
		rec.Timestamp = time.Now().Unix()
	}
	m.Evidence.Inrun = append(m.Evidence.Inrun, rec)
	r.metrics.IncEvidenceRecorded()

	if m.State == match.StateReadyToStart {
		if err := m.Transition(match.StateInProgress); err != nil {
			return nil, err
		}
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	r.publishStateChange(m, dryRun)
	return m, nil
}

// resultPath is the linear pre-upload path RecordResult may traverse.
var resultPath = map[match.State]match.State{
	match.StateReadyToStart: match.StateInProgress,
	match.StateInProgress:   match.StateAwaitingResultUpload,
}

// RecordResult stores a submitted result proof and moves the match to
// AWAITING_CONFIRMATION. A proof may arrive before any in-run evidence, so
// the match is walked forward through the intermediate states one legal
// transition at a time rather than jumping. Resubmitting before
// confirmation overwrites the previous proof without touching state.
func (r *Referee) RecordResult(matchID string, proof match.ResultProof, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}

	// Normalize: a proof may arrive mid-match, so walk the known linear
	// path forward one legal transition at a time.
	for next, ok := resultPath[m.State]; ok; next, ok = resultPath[m.State] {
		if err := m.Transition(next); err != nil {
			return nil, err
		}
	}
	if m.State != match.StateAwaitingResultUpload && m.State != match.StateAwaitingConfirmation {
		return nil, fmt.Errorf("%w: cannot record result while %s", match.ErrInvalidTransition, m.State)
	}

	if proof.SubmittedAt == 0 {
		proof.SubmittedAt = time.Now().Unix()
	}
	m.Evidence.Result = &proof
	if m.State == match.StateAwaitingResultUpload {
		if err := m.Transition(match.StateAwaitingConfirmation); err != nil {
			return nil, err
		}
	}
	log.Info("Result recorded", "matchID", m.ID, "metricType", proof.MetricType, "value", proof.Value)

	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	r.publishStateChange(m, dryRun)
	return m, nil
}

// Confirm records one player's agreement with the submitted result.
// Confirming twice is a no-op, even after the match has resolved. Only a
// quorum reached while AWAITING_CONFIRMATION resolves the match.
func (r *Referee) Confirm(matchID, userID string, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}
	if _, ok := m.PlayerByUser(userID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotInMatch, userID)
	}
	if m.HasConfirmed(userID) {
		return m, nil
	}
	if m.State.Terminal() {
		return nil, fmt.Errorf("%w: cannot confirm %s match", match.ErrInvalidTransition, m.State)
	}

	m.ConfirmedBy = append(m.ConfirmedBy, userID)
	quorum := m.State == match.StateAwaitingConfirmation
	for _, p := range m.Players {
		if !m.HasConfirmed(p.UserID) {
			quorum = false
			break
		}
	}
	if quorum {
		if err := m.Transition(match.StateResolved); err != nil {
			return nil, err
		}
		r.metrics.IncMatchesResolved()
		log.Info("Match resolved by confirmation quorum", "matchID", m.ID)
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}

	if quorum {
		if !dryRun {
			if err := r.pubsub.SendMessage(pubsub.EventMatchResolved, m); err != nil {
				log.Error("Failed to publish match-resolved event", "error", err, "matchID", m.ID)
			}
		}
		if err := r.notifier.SendMatchResolvedNotification(m, dryRun); err != nil {
			log.Error("Failed to send match-resolved notification", "error", err, "matchID", m.ID)
		}
	} else {
		r.publishStateChange(m, dryRun)
	}
	return m, nil
}

// OpenDispute files a contest against a match and freezes it in DISPUTED.
// Any non-terminal match can be disputed, and a match already DISPUTED
// accepts further disputes without a state change.
func (r *Referee) OpenDispute(matchID, userID, reason string, dryRun bool) (*dispute.Dispute, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}
	if m.State != match.StateDisputed && !match.CanTransition(m.State, match.StateDisputed) {
		return nil, fmt.Errorf("%w: cannot dispute %s match", match.ErrInvalidTransition, m.State)
	}

	d := &dispute.Dispute{
		ID:        uuid.New().String(),
		MatchID:   m.ID,
		OpenedBy:  userID,
		Reason:    reason,
		Status:    dispute.StatusOpen,
		CreatedAt: time.Now().Unix(),
	}
	if err := r.disputes.Create(d); err != nil {
		return nil, err
	}
	if m.State != match.StateDisputed {
		if err := m.Transition(match.StateDisputed); err != nil {
			return nil, err
		}
		if err := r.matches.Save(m); err != nil {
			return nil, err
		}
	}
	r.metrics.IncDisputesOpened()
	log.Warn("Dispute opened", "disputeID", d.ID, "matchID", m.ID, "openedBy", userID)

	if !dryRun {
		if err := r.pubsub.SendMessage(pubsub.EventDisputeOpened, d); err != nil {
			log.Error("Failed to publish dispute-opened event", "error", err, "disputeID", d.ID)
		}
	}
	if err := r.notifier.SendDisputeOpenedNotification(d, dryRun); err != nil {
		log.Error("Failed to send dispute-opened notification", "error", err, "disputeID", d.ID)
	}
	return d, nil
}

// ResolveDispute records a moderator decision. uphold marks the dispute
// RESOLVED, otherwise REJECTED; either way the decision is final and the
// match, if still DISPUTED, advances to RESOLVED.
func (r *Referee) ResolveDispute(disputeID, decision string, uphold, dryRun bool) (*dispute.Dispute, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.disputes.Get(disputeID)
	if err != nil {
		return nil, err
	}
	if d.Status != dispute.StatusOpen {
		return nil, fmt.Errorf("%w: %s is %s", dispute.ErrAlreadyResolved, d.ID, d.Status)
	}

	now := time.Now().Unix()
	d.Status = dispute.StatusRejected
	if uphold {
		d.Status = dispute.StatusResolved
	}
	d.Decision = decision
	d.ResolvedAt = &now
	if err := r.disputes.Save(d); err != nil {
		return nil, err
	}
	log.Info("Dispute resolved", "disputeID", d.ID, "status", d.Status)

	m, err := r.matches.Get(d.MatchID)
	if err != nil {
		return nil, err
	}
	if m.State == match.StateDisputed {
		if err := m.Transition(match.StateResolved); err != nil {
			return nil, err
		}
		if err := r.matches.Save(m); err != nil {
			return nil, err
		}
		r.metrics.IncMatchesResolved()
		if !dryRun {
			if err := r.pubsub.SendMessage(pubsub.EventMatchResolved, m); err != nil {
				log.Error("Failed to publish match-resolved event", "error", err, "matchID", m.ID)
			}
		}
		if err := r.notifier.SendMatchResolvedNotification(m, dryRun); err != nil {
			log.Error("Failed to send match-resolved notification", "error", err, "matchID", m.ID)
		}
	}
	return d, nil
}

// Cancel aborts a match from any state that still permits it.
func (r *Referee) Cancel(matchID string, dryRun bool) (*match.Match, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.matches.Get(matchID)
	if err != nil {
		return nil, err
	}
	if err := m.Transition(match.StateCanceled); err != nil {
		return nil, err
	}
	if err := r.matches.Save(m); err != nil {
		return nil, err
	}
	log.Info("Match canceled", "matchID", m.ID)
	r.publishStateChange(m, dryRun)
	return m, nil
}

// ExpireStale sweeps the pre-match states and expires any match that has
// not progressed since the cutoff. It returns the ids it expired.
func (r *Referee) ExpireStale(cutoff int64, dryRun bool) ([]string, error) {
	defer r.observeDuration(time.Now())
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []string
	for _, state := range []match.State{match.StateCreated, match.StateCheckin, match.StateDrafting} {
		stale, err := r.matches.GetByState(state)
		if err != nil {
			return nil, err
		}
		for _, m := range stale {
			if m.UpdatedAt >= cutoff {
				continue
			}
			if err := m.Transition(match.StateExpired); err != nil {
				return nil, err
			}
			if err := r.matches.Save(m); err != nil {
				return nil, err
			}
			log.Info("Match expired", "matchID", m.ID, "lastState", state)
			r.publishStateChange(m, dryRun)
			expired = append(expired, m.ID)
		}
	}
	return expired, nil
}

func (r *Referee) publishStateChange(m *match.Match, dryRun bool) {
	if dryRun {
		return
	}
	if err := r.pubsub.SendMessage(pubsub.EventStateChanged, m); err != nil {
		log.Error("Failed to publish state change", "error", err, "matchID", m.ID, "state", m.State)
	}
}
