package matchmaking

// MockTicketStore is a mock implementation of the TicketStore interface.
type MockTicketStore struct {
	tickets map[string]*Ticket

	CreateFunc      func(t *Ticket) error
	GetFunc         func(id string) (*Ticket, error)
	SaveFunc        func(t *Ticket) error
	DeleteFunc      func(id string) error
	FindByUserFunc  func(queueID, userID string) (*Ticket, error)
	FindWaitingFunc func(queueID, excludeUserID string) (*Ticket, error)

	CreateCalls []*Ticket
	SaveCalls   []*Ticket
	DeleteCalls []string
}

// NewMockTicketStore creates a new mock ticket store.
func NewMockTicketStore() *MockTicketStore {
	return &MockTicketStore{tickets: make(map[string]*Ticket)}
}

func (m *MockTicketStore) Create(t *Ticket) error {
	m.CreateCalls = append(m.CreateCalls, t)
	if m.CreateFunc != nil {
		return m.CreateFunc(t)
	}
	cp := *t
	m.tickets[t.ID] = &cp
	return nil
}

func (m *MockTicketStore) Get(id string) (*Ticket, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	t, ok := m.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockTicketStore) Save(t *Ticket) error {
	m.SaveCalls = append(m.SaveCalls, t)
	if m.SaveFunc != nil {
		return m.SaveFunc(t)
	}
	if _, ok := m.tickets[t.ID]; !ok {
		return ErrNotFound
	}
	cp := *t
	m.tickets[t.ID] = &cp
	return nil
}

func (m *MockTicketStore) Delete(id string) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	if _, ok := m.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(m.tickets, id)
	return nil
}

func (m *MockTicketStore) FindByUser(queueID, userID string) (*Ticket, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(queueID, userID)
	}
	for _, t := range m.tickets {
		if t.QueueID == queueID && t.UserID == userID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockTicketStore) FindWaiting(queueID, excludeUserID string) (*Ticket, error) {
	if m.FindWaitingFunc != nil {
		return m.FindWaitingFunc(queueID, excludeUserID)
	}
	var oldest *Ticket
	for _, t := range m.tickets {
		if t.QueueID != queueID || t.UserID == excludeUserID || t.Status != StatusWaiting {
			continue
		}
		if oldest == nil || t.CreatedAt < oldest.CreatedAt {
			oldest = t
		}
	}
	if oldest == nil {
		return nil, ErrNotFound
	}
	cp := *oldest
	return &cp, nil
}
