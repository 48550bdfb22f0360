package match

import "sync"

// MockStore is an in-memory implementation of the Store interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	matches map[string]*Match

	// Spies for method calls
	CreateFunc func(m *Match) error
	GetFunc    func(id string) (*Match, error)
	SaveFunc   func(m *Match) error

	// Call records
	CreateCalls []*Match
	SaveCalls   []*Match
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{matches: make(map[string]*Match)}
}

// Reset clears all call records and stored matches.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = make(map[string]*Match)
	m.CreateCalls = nil
	m.SaveCalls = nil
}

func (m *MockStore) Create(mm *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, mm)
	if m.CreateFunc != nil {
		return m.CreateFunc(mm)
	}
	m.matches[mm.ID] = mm
	return nil
}

func (m *MockStore) Get(id string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	mm, ok := m.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return mm, nil
}

func (m *MockStore) Save(mm *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, mm)
	if m.SaveFunc != nil {
		return m.SaveFunc(mm)
	}
	if _, ok := m.matches[mm.ID]; !ok {
		return ErrNotFound
	}
	m.matches[mm.ID] = mm
	return nil
}

func (m *MockStore) GetAll() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Match, 0, len(m.matches))
	for _, mm := range m.matches {
		out = append(out, mm)
	}
	return out, nil
}

func (m *MockStore) GetByState(state State) ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Match
	for _, mm := range m.matches {
		if mm.State == state {
			out = append(out, mm)
		}
	}
	return out, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches = make(map[string]*Match)
}

func (m *MockStore) ClearMatch(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
}
