package matchmaking

import (
	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/match"
)

// TicketStatus represents the status of a matchmaking ticket.
type TicketStatus string

const (
	StatusWaiting    TicketStatus = "WAITING"
	StatusMatchFound TicketStatus = "MATCH_FOUND"
)

// Ticket tracks one user's search state on a queue. A ticket is deleted once
// the caller has consumed a MATCH_FOUND result.
type Ticket struct {
	ID        string       `json:"id"`
	QueueID   string       `json:"queue_id"`
	UserID    string       `json:"user_id"`
	Status    TicketStatus `json:"status"`
	MatchID   string       `json:"match_id,omitempty"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

// SearchStatus is what a search, poll or cancel call reports back.
type SearchStatus string

const (
	SearchSearching  SearchStatus = "SEARCHING"
	SearchMatchFound SearchStatus = "MATCH_FOUND"
	SearchCanceled   SearchStatus = "CANCELED"
)

// SearchResult is the outcome of a matchmaking call. Match is set only when
// Status is MATCH_FOUND.
type SearchResult struct {
	Status   SearchStatus `json:"status"`
	TicketID string       `json:"ticket_id,omitempty"`
	Match    *match.Match `json:"match,omitempty"`
}
