package matchmaking

import "errors"

// ErrNotFound is returned when a ticket id does not exist in the store.
var ErrNotFound = errors.New("ticket not found")

// TicketStore defines the storage contract for matchmaking tickets.
// Implementations must serialize operations per queue so two concurrent
// searchers can never claim the same waiting ticket.
type TicketStore interface {
	Create(t *Ticket) error
	Get(id string) (*Ticket, error)
	Save(t *Ticket) error
	Delete(id string) error
	// FindByUser returns the caller's existing ticket on a queue, if any.
	FindByUser(queueID, userID string) (*Ticket, error)
	// FindWaiting returns any WAITING ticket on the queue held by someone
	// other than excludeUserID.
	FindWaiting(queueID, excludeUserID string) (*Ticket, error)
}
