package matchmaking

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles database operations for matchmaking tickets.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new ticket store.
func NewStore(db *sql.DB) TicketStore {
	return &store{
		db: db,
	}
}

const ticketColumns = `id, queue_id, user_id, status, match_id, created_at, updated_at`

func (s *store) Create(t *Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO matchmaking_tickets (` + ticketColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		t.ID, t.QueueID, t.UserID, string(t.Status), nullable(t.MatchID), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	log.Info("Created matchmaking ticket", "ticketID", t.ID, "queueID", t.QueueID, "userID", t.UserID, "status", t.Status)
	return nil
}

func (s *store) Get(id string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+ticketColumns+` FROM matchmaking_tickets WHERE id = ?`, id)
	t, err := scanTicket(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return t, nil
}

func (s *store) Save(t *Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE matchmaking_tickets
		SET status = ?, match_id = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.Exec(query, string(t.Status), nullable(t.MatchID), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	return nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM matchmaking_tickets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	log.Debug("Deleted matchmaking ticket", "ticketID", id)
	return nil
}

func (s *store) FindByUser(queueID, userID string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT `+ticketColumns+` FROM matchmaking_tickets WHERE queue_id = ? AND user_id = ?`,
		queueID, userID,
	)
	t, err := scanTicket(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no ticket for user %s on queue %s", ErrNotFound, userID, queueID)
		}
		return nil, fmt.Errorf("failed to find ticket by user: %w", err)
	}
	return t, nil
}

func (s *store) FindWaiting(queueID, excludeUserID string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT `+ticketColumns+` FROM matchmaking_tickets
		 WHERE queue_id = ? AND status = ? AND user_id != ?
		 ORDER BY created_at ASC LIMIT 1`,
		queueID, string(StatusWaiting), excludeUserID,
	)
	t, err := scanTicket(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no waiting ticket on queue %s", ErrNotFound, queueID)
		}
		return nil, fmt.Errorf("failed to find waiting ticket: %w", err)
	}
	return t, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(row scanner) (*Ticket, error) {
	var t Ticket
	var status string
	var matchID sql.NullString

	err := row.Scan(&t.ID, &t.QueueID, &t.UserID, &status, &matchID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = TicketStatus(status)
	t.MatchID = matchID.String
	return &t, nil
}
