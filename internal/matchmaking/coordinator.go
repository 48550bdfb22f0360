package matchmaking

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/league"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/metrics"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/notifier"
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/pubsub"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Coordinator pairs waiting tickets into matches. Search is serialized with
// a single mutex so two concurrent searchers can never both claim the same
// waiting ticket.
type Coordinator struct {
	tickets  TicketStore
	matches  match.Store
	leagues  league.Store
	notifier notifier.Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	mu       sync.Mutex
}

// NewCoordinator creates a new matchmaking Coordinator.
func NewCoordinator(tickets TicketStore, matches match.Store, leagues league.Store, notifier notifier.Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Coordinator {
	return &Coordinator{
		tickets:  tickets,
		matches:  matches,
		leagues:  leagues,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
	}
}

// Search enqueues the caller on a queue, or pairs them with a waiting
// opponent. Re-searching with an existing ticket is idempotent.
func (c *Coordinator) Search(queueID, userID string, dryRun bool) (*SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.metrics.IncMatchmakingSearches()

	queue, err := c.leagues.GetQueue(queueID)
	if err != nil {
		return nil, err
	}

	// An existing ticket means the caller is already searching (or already
	// matched); report its current status instead of enqueueing twice.
	existing, err := c.tickets.FindByUser(queueID, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err == nil {
		if existing.Status == StatusMatchFound {
			m, err := c.matches.Get(existing.MatchID)
			if err != nil {
				return nil, err
			}
			return &SearchResult{Status: SearchMatchFound, TicketID: existing.ID, Match: m}, nil
		}
		log.Debug("User is already searching", "queueID", queueID, "userID", userID, "ticketID", existing.ID)
		return &SearchResult{Status: SearchSearching, TicketID: existing.ID}, nil
	}

	now := time.Now()
	opponent, err := c.tickets.FindWaiting(queueID, userID)
	if errors.Is(err, ErrNotFound) {
		// Nobody waiting: enqueue the caller.
		ticket := &Ticket{
			ID:        uuid.New().String(),
			QueueID:   queueID,
			UserID:    userID,
			Status:    StatusWaiting,
			CreatedAt: now.Unix(),
			UpdatedAt: now.Unix(),
		}
		if err := c.tickets.Create(ticket); err != nil {
			return nil, err
		}
		return &SearchResult{Status: SearchSearching, TicketID: ticket.ID}, nil
	}
	if err != nil {
		return nil, err
	}

	// Pair: the waiting opponent takes side A, the caller side B.
	m, err := c.createMatch(queue, opponent.UserID, userID)
	if err != nil {
		return nil, err
	}

	opponent.Status = StatusMatchFound
	opponent.MatchID = m.ID
	opponent.UpdatedAt = now.Unix()
	if err := c.tickets.Save(opponent); err != nil {
		return nil, err
	}

	callerTicket := &Ticket{
		ID:        uuid.New().String(),
		QueueID:   queueID,
		UserID:    userID,
		Status:    StatusMatchFound,
		MatchID:   m.ID,
		CreatedAt: now.Unix(),
		UpdatedAt: now.Unix(),
	}
	if err := c.tickets.Create(callerTicket); err != nil {
		return nil, err
	}

	log.Info("Paired matchmaking tickets", "queueID", queueID, "matchID", m.ID, "sideA", opponent.UserID, "sideB", userID)
	if !dryRun {
		if err := c.pubsub.SendMessage(pubsub.EventMatchFound, m); err != nil {
			log.Error("Failed to publish match-found event", "error", err, "matchID", m.ID)
		}
	}
	if err := c.notifier.SendMatchFoundNotification(m, dryRun); err != nil {
		log.Error("Failed to send match-found notification", "error", err, "matchID", m.ID)
	}

	return &SearchResult{Status: SearchMatchFound, TicketID: callerTicket.ID, Match: m}, nil
}

// PollStatus reports a ticket's state. A MATCH_FOUND ticket is consumed:
// the match is returned exactly once and the ticket deleted.
func (c *Coordinator) PollStatus(ticketID string) (*SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ticket, err := c.tickets.Get(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status != StatusMatchFound {
		return &SearchResult{Status: SearchSearching, TicketID: ticket.ID}, nil
	}

	m, err := c.matches.Get(ticket.MatchID)
	if err != nil {
		return nil, err
	}
	if err := c.tickets.Delete(ticket.ID); err != nil {
		return nil, err
	}
	return &SearchResult{Status: SearchMatchFound, TicketID: ticket.ID, Match: m}, nil
}

// Cancel withdraws a search. Cancellation never loses a match that was
// already created: a MATCH_FOUND ticket is consumed instead of discarded.
func (c *Coordinator) Cancel(ticketID string) (*SearchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ticket, err := c.tickets.Get(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == StatusMatchFound {
		m, err := c.matches.Get(ticket.MatchID)
		if err != nil {
			return nil, err
		}
		if err := c.tickets.Delete(ticket.ID); err != nil {
			return nil, err
		}
		return &SearchResult{Status: SearchMatchFound, TicketID: ticket.ID, Match: m}, nil
	}

	if err := c.tickets.Delete(ticket.ID); err != nil {
		return nil, err
	}
	log.Info("Canceled matchmaking ticket", "ticketID", ticket.ID, "userID", ticket.UserID)
	return &SearchResult{Status: SearchCanceled, TicketID: ticket.ID}, nil
}

// createMatch builds the initial match for a fresh pairing and moves it to
// CHECKIN, the first state players act in.
func (c *Coordinator) createMatch(queue *league.Queue, sideAUserID, sideBUserID string) (*match.Match, error) {
	ruleset, err := c.leagues.GetRuleset(queue.RulesetID)
	if err != nil {
		return nil, err
	}
	season, err := c.leagues.GetActiveSeason(queue.LeagueID)
	if err != nil {
		return nil, err
	}
	tpl, ok := draft.TemplateByID(ruleset.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: draft template %s", league.ErrNotFound, ruleset.TemplateID)
	}

	now := time.Now().Unix()
	m := &match.Match{
		ID:          uuid.New().String(),
		State:       match.StateCreated,
		LeagueID:    queue.LeagueID,
		RulesetID:   ruleset.ID,
		ChallengeID: queue.ChallengeID,
		SeasonID:    season.ID,
		Players: []match.Player{
			{UserID: sideAUserID, Side: draft.SideA},
			{UserID: sideBUserID, Side: draft.SideB},
		},
		Draft:     draft.NewState(tpl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Transition(match.StateCheckin); err != nil {
		return nil, err
	}
	if err := c.matches.Create(m); err != nil {
		return nil, err
	}

	c.metrics.IncMatchesCreated()
	return m, nil
}
