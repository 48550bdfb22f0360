package dispute

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles all database operations for disputes.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new dispute Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Create(d *Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO disputes (id, match_id, opened_by, reason, status, decision, created_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		d.ID, d.MatchID, d.OpenedBy, d.Reason, string(d.Status), d.Decision, d.CreatedAt, d.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dispute: %w", err)
	}

	log.Info("Opened dispute", "disputeID", d.ID, "matchID", d.MatchID, "openedBy", d.OpenedBy)
	return nil
}

func (s *store) Get(id string) (*Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, match_id, opened_by, reason, status, decision, created_at, resolved_at FROM disputes WHERE id = ?`,
		id,
	)
	d, err := scanDispute(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get dispute: %w", err)
	}
	return d, nil
}

func (s *store) Save(d *Dispute) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE disputes
		SET status = ?, decision = ?, resolved_at = ?
		WHERE id = ?
	`
	res, err := s.db.Exec(query, string(d.Status), d.Decision, d.ResolvedAt, d.ID)
	if err != nil {
		return fmt.Errorf("failed to save dispute: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}
	return nil
}

func (s *store) ListOpen() ([]*Dispute, error) {
	return s.query(
		`SELECT id, match_id, opened_by, reason, status, decision, created_at, resolved_at
		 FROM disputes WHERE status = ? ORDER BY created_at ASC`,
		string(StatusOpen),
	)
}

func (s *store) ListByMatch(matchID string) ([]*Dispute, error) {
	return s.query(
		`SELECT id, match_id, opened_by, reason, status, decision, created_at, resolved_at
		 FROM disputes WHERE match_id = ? ORDER BY created_at ASC`,
		matchID,
	)
}

func (s *store) query(query string, args ...any) ([]*Dispute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query disputes: %w", err)
	}
	defer rows.Close()

	var disputes []*Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dispute row: %w", err)
		}
		disputes = append(disputes, d)
	}
	return disputes, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDispute(row scanner) (*Dispute, error) {
	var d Dispute
	var status string
	var decision sql.NullString
	var resolvedAt sql.NullInt64

	err := row.Scan(&d.ID, &d.MatchID, &d.OpenedBy, &d.Reason, &status, &decision, &d.CreatedAt, &resolvedAt)
	if err != nil {
		return nil, err
	}
	d.Status = Status(status)
	d.Decision = decision.String
	if resolvedAt.Valid {
		d.ResolvedAt = &resolvedAt.Int64
	}
	return &d, nil
}
