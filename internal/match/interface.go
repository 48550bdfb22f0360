package match

import "errors"

// ErrNotFound is returned when a match id does not exist in the store.
var ErrNotFound = errors.New("match not found")

// Store defines the storage contract for matches. Implementations must
// serialize operations per match id; the core performs no locking of its own
// and assumes at most one in-flight mutation per match.
type Store interface {
	Create(m *Match) error
	Get(id string) (*Match, error)
	Save(m *Match) error
	GetAll() ([]*Match, error)
	GetByState(state State) ([]*Match, error)
	Clear()
	ClearMatch(id string)
}
