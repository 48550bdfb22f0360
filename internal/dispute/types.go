package dispute

import "errors"

var (
	// ErrNotFound is returned when a dispute id does not exist.
	ErrNotFound = errors.New("dispute not found")
	// ErrAlreadyResolved is returned when a decision is recorded against a
	// dispute that already left OPEN.
	ErrAlreadyResolved = errors.New("dispute already resolved")
)

// Status is the lifecycle state of a dispute.
type Status string

const (
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
	StatusRejected Status = "REJECTED"
)

// Dispute is one contest raised against a match. It references its match by
// id only; the match itself stays in the match store.
type Dispute struct {
	ID         string `json:"id"`
	MatchID    string `json:"match_id"`
	OpenedBy   string `json:"opened_by"`
	Reason     string `json:"reason"`
	Status     Status `json:"status"`
	Decision   string `json:"decision,omitempty"`
	CreatedAt  int64  `json:"created_at"`
	ResolvedAt *int64 `json:"resolved_at,omitempty"`
}

// Store defines the storage contract for disputes.
type Store interface {
	Create(d *Dispute) error
	Get(id string) (*Dispute, error)
	Save(d *Dispute) error
	ListOpen() ([]*Dispute, error)
	ListByMatch(matchID string) ([]*Dispute, error)
}
