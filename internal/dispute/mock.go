package dispute

import (
	"fmt"
	"sync"
)

// MockStore is an in-memory implementation of the Store interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu       sync.Mutex
	disputes map[string]*Dispute

	// Call records
	CreateCalls []*Dispute
	SaveCalls   []*Dispute
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{disputes: make(map[string]*Dispute)}
}

func (m *MockStore) Create(d *Dispute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, d)
	m.disputes[d.ID] = d
	return nil
}

func (m *MockStore) Get(id string) (*Dispute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.disputes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return d, nil
}

func (m *MockStore) Save(d *Dispute) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, d)
	if _, ok := m.disputes[d.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}
	m.disputes[d.ID] = d
	return nil
}

func (m *MockStore) ListOpen() ([]*Dispute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Dispute
	for _, d := range m.disputes {
		if d.Status == StatusOpen {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockStore) ListByMatch(matchID string) ([]*Dispute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Dispute
	for _, d := range m.disputes {
		if d.MatchID == matchID {
			out = append(out, d)
		}
	}
	return out, nil
}
