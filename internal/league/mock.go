package league

import (
	"fmt"
	"sync"
)

// MockStore is an in-memory implementation of the Store interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	leagues  map[string]League
	seasons  map[string]Season
	rulesets map[string]Ruleset
	queues   map[string]Queue
	agents   map[string]Agent
	ratings  map[string]PlayerRating

	// Spies for method calls
	GetQueueFunc        func(id string) (*Queue, error)
	GetRulesetFunc      func(id string) (*Ruleset, error)
	GetActiveSeasonFunc func(leagueID string) (*Season, error)

	// Call records
	UpsertRatingCalls []PlayerRating
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{
		leagues:  make(map[string]League),
		seasons:  make(map[string]Season),
		rulesets: make(map[string]Ruleset),
		queues:   make(map[string]Queue),
		agents:   make(map[string]Agent),
		ratings:  make(map[string]PlayerRating),
	}
}

func (m *MockStore) UpsertLeague(l League) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leagues[l.ID] = l
	return nil
}

func (m *MockStore) GetLeague(id string) (*League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leagues[id]
	if !ok {
		return nil, fmt.Errorf("%w: league %s", ErrNotFound, id)
	}
	return &l, nil
}

func (m *MockStore) UpsertSeason(s Season) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.Active {
		for id, existing := range m.seasons {
			if existing.LeagueID == s.LeagueID {
				existing.Active = false
				m.seasons[id] = existing
			}
		}
	}
	m.seasons[s.ID] = s
	return nil
}

func (m *MockStore) GetActiveSeason(leagueID string) (*Season, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetActiveSeasonFunc != nil {
		return m.GetActiveSeasonFunc(leagueID)
	}
	for _, s := range m.seasons {
		if s.LeagueID == leagueID && s.Active {
			season := s
			return &season, nil
		}
	}
	return nil, fmt.Errorf("%w: no active season for league %s", ErrNotFound, leagueID)
}

func (m *MockStore) UpsertRuleset(r Ruleset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rulesets[r.ID] = r
	return nil
}

func (m *MockStore) GetRuleset(id string) (*Ruleset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRulesetFunc != nil {
		return m.GetRulesetFunc(id)
	}
	r, ok := m.rulesets[id]
	if !ok {
		return nil, fmt.Errorf("%w: ruleset %s", ErrNotFound, id)
	}
	return &r, nil
}

func (m *MockStore) UpsertQueue(q Queue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[q.ID] = q
	return nil
}

func (m *MockStore) GetQueue(id string) (*Queue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetQueueFunc != nil {
		return m.GetQueueFunc(id)
	}
	q, ok := m.queues[id]
	if !ok {
		return nil, fmt.Errorf("%w: queue %s", ErrNotFound, id)
	}
	return &q, nil
}

func (m *MockStore) UpsertAgents(agents []Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range agents {
		m.agents[a.ID] = a
	}
	return nil
}

func (m *MockStore) GetAllAgents() ([]Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockStore) GetRating(userID, leagueID string) (*PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.ratings[userID+"/"+leagueID]
	if !ok {
		return &PlayerRating{UserID: userID, LeagueID: leagueID, Elo: DefaultElo}, nil
	}
	return &r, nil
}

func (m *MockStore) UpsertRating(r PlayerRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertRatingCalls = append(m.UpsertRatingCalls, r)
	m.ratings[r.UserID+"/"+r.LeagueID] = r
	return nil
}

func (m *MockStore) GetStandings(leagueID string) ([]PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []PlayerRating
	for _, r := range m.ratings {
		if r.LeagueID == leagueID {
			out = append(out, r)
		}
	}
	return out, nil
}
