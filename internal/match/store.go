package match

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store handles all database operations for matches.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new match Store backed by SQL.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const matchColumns = `id, state, league_id, ruleset_id, challenge_id, season_id,
	players_json, draft_json, evidence_json, confirmed_by_json, created_at, updated_at`

// Create inserts a new match row.
func (s *store) Create(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, draftJSON, evidenceJSON, confirmedJSON, err := marshalBlobs(m)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches (` + matchColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		m.ID, string(m.State), m.LeagueID, m.RulesetID, m.ChallengeID, m.SeasonID,
		playersJSON, draftJSON, evidenceJSON, confirmedJSON, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	log.Info("Created match", "matchID", m.ID, "state", m.State)
	return nil
}

// Get retrieves a match by id.
func (s *store) Get(id string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return m, nil
}

// Save writes the full match back. The whole row is replaced so the draft
// log, evidence bundle and confirmations always travel with the state.
func (s *store) Save(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, draftJSON, evidenceJSON, confirmedJSON, err := marshalBlobs(m)
	if err != nil {
		return err
	}

	query := `
		UPDATE matches
		SET state = ?, league_id = ?, ruleset_id = ?, challenge_id = ?, season_id = ?,
			players_json = ?, draft_json = ?, evidence_json = ?, confirmed_by_json = ?,
			created_at = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.db.Exec(query,
		string(m.State), m.LeagueID, m.RulesetID, m.ChallengeID, m.SeasonID,
		playersJSON, draftJSON, evidenceJSON, confirmedJSON, m.CreatedAt, m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, m.ID)
	}

	log.Debug("Saved match", "matchID", m.ID, "state", m.State)
	return nil
}

// GetAll returns every match, newest first.
func (s *store) GetAll() ([]*Match, error) {
	return s.query(`SELECT ` + matchColumns + ` FROM matches ORDER BY created_at DESC`)
}

// GetByState returns every match currently in the given state.
func (s *store) GetByState(state State) ([]*Match, error) {
	return s.query(`SELECT `+matchColumns+` FROM matches WHERE state = ? ORDER BY created_at DESC`, string(state))
}

func (s *store) query(query string, args ...any) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Clear removes all matches. Intended for operational resets and tests.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM matches`); err != nil {
		log.Error("Failed to clear matches", "error", err)
	}
}

// ClearMatch removes a single match.
func (s *store) ClearMatch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, id); err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", id)
	}
}

func marshalBlobs(m *Match) (players, draftLog, evidence, confirmed []byte, err error) {
	if players, err = json.Marshal(m.Players); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal players: %w", err)
	}
	if draftLog, err = json.Marshal(m.Draft); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal draft: %w", err)
	}
	if evidence, err = json.Marshal(m.Evidence); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal evidence: %w", err)
	}
	if m.ConfirmedBy == nil {
		confirmed = []byte("[]")
	} else if confirmed, err = json.Marshal(m.ConfirmedBy); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal confirmations: %w", err)
	}
	return players, draftLog, evidence, confirmed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (*Match, error) {
	var m Match
	var state string
	var playersJSON, draftJSON, evidenceJSON, confirmedJSON []byte

	err := row.Scan(
		&m.ID, &state, &m.LeagueID, &m.RulesetID, &m.ChallengeID, &m.SeasonID,
		&playersJSON, &draftJSON, &evidenceJSON, &confirmedJSON,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.State = State(state)

	if err := json.Unmarshal(playersJSON, &m.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players: %w", err)
	}
	if err := json.Unmarshal(draftJSON, &m.Draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	if err := json.Unmarshal(evidenceJSON, &m.Evidence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evidence: %w", err)
	}
	if err := json.Unmarshal(confirmedJSON, &m.ConfirmedBy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal confirmations: %w", err)
	}
	return &m, nil
}
