package league

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/TheLitis/Inter-Knot-Arena-sub000/internal/draft"
	"github.com/charmbracelet/log"
)

// store handles all database operations for the league catalog.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new league Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) UpsertLeague(l League) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leagues (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`
	if _, err := s.db.Exec(query, l.ID, l.Name, l.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert league: %w", err)
	}
	return nil
}

func (s *store) GetLeague(id string) (*League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var l League
	err := s.db.QueryRow(`SELECT id, name, created_at FROM leagues WHERE id = ?`, id).
		Scan(&l.ID, &l.Name, &l.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: league %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	return &l, nil
}

func (s *store) UpsertSeason(season Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// A league carries at most one active season.
	if season.Active {
		if _, err := tx.Exec(`UPDATE seasons SET active = 0 WHERE league_id = ?`, season.LeagueID); err != nil {
			return fmt.Errorf("failed to deactivate prior seasons: %w", err)
		}
	}

	query := `
		INSERT INTO seasons (id, league_id, name, starts_at, ends_at, active)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			starts_at = excluded.starts_at,
			ends_at = excluded.ends_at,
			active = excluded.active
	`
	if _, err := tx.Exec(query, season.ID, season.LeagueID, season.Name, season.StartsAt, season.EndsAt, boolToInt(season.Active)); err != nil {
		return fmt.Errorf("failed to upsert season: %w", err)
	}
	return tx.Commit()
}

func (s *store) GetActiveSeason(leagueID string) (*Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var season Season
	var active int
	err := s.db.QueryRow(
		`SELECT id, league_id, name, starts_at, ends_at, active FROM seasons WHERE league_id = ? AND active = 1`,
		leagueID,
	).Scan(&season.ID, &season.LeagueID, &season.Name, &season.StartsAt, &season.EndsAt, &active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no active season for league %s", ErrNotFound, leagueID)
		}
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	season.Active = active != 0
	return &season, nil
}

func (s *store) UpsertRuleset(r Ruleset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agentIDs, err := json.Marshal(r.Policy.AgentIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal agent ids: %w", err)
	}

	query := `
		INSERT INTO rulesets (id, name, template_id, policy_mode, agent_ids_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			template_id = excluded.template_id,
			policy_mode = excluded.policy_mode,
			agent_ids_json = excluded.agent_ids_json
	`
	if _, err := s.db.Exec(query, r.ID, r.Name, r.TemplateID, string(r.Policy.Mode), agentIDs); err != nil {
		return fmt.Errorf("failed to upsert ruleset: %w", err)
	}
	return nil
}

func (s *store) GetRuleset(id string) (*Ruleset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r Ruleset
	var mode string
	var agentIDs []byte
	err := s.db.QueryRow(
		`SELECT id, name, template_id, policy_mode, agent_ids_json FROM rulesets WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.TemplateID, &mode, &agentIDs)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: ruleset %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get ruleset: %w", err)
	}
	r.Policy.Mode = draft.PolicyMode(mode)
	if err := json.Unmarshal(agentIDs, &r.Policy.AgentIDs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agent ids: %w", err)
	}
	return &r, nil
}

func (s *store) UpsertQueue(q Queue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO queues (id, league_id, ruleset_id, challenge_id, name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			league_id = excluded.league_id,
			ruleset_id = excluded.ruleset_id,
			challenge_id = excluded.challenge_id,
			name = excluded.name
	`
	if _, err := s.db.Exec(query, q.ID, q.LeagueID, q.RulesetID, q.ChallengeID, q.Name); err != nil {
		return fmt.Errorf("failed to upsert queue: %w", err)
	}
	return nil
}

func (s *store) GetQueue(id string) (*Queue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var q Queue
	err := s.db.QueryRow(
		`SELECT id, league_id, ruleset_id, challenge_id, name FROM queues WHERE id = ?`, id,
	).Scan(&q.ID, &q.LeagueID, &q.RulesetID, &q.ChallengeID, &q.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: queue %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get queue: %w", err)
	}
	return &q, nil
}

func (s *store) UpsertAgents(agents []Agent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO agents (id, name, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, role = excluded.role
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare agent upsert: %w", err)
	}
	defer stmt.Close()

	for _, a := range agents {
		if _, err := stmt.Exec(a.ID, a.Name, a.Role); err != nil {
			return fmt.Errorf("failed to upsert agent %s: %w", a.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit agent upserts: %w", err)
	}

	log.Debug("Upserted agents", "count", len(agents))
	return nil
}

func (s *store) GetAllAgents() ([]Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, role FROM agents ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	var agents []Agent
	for rows.Next() {
		var a Agent
		var role sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &role); err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}
		a.Role = role.String
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// GetRating returns the player's standing in the league. A player without a
// row yet gets the default entry rating rather than an error.
func (s *store) GetRating(userID, leagueID string) (*PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var r PlayerRating
	err := s.db.QueryRow(
		`SELECT user_id, league_id, elo, provisional_matches, updated_at FROM ratings WHERE user_id = ? AND league_id = ?`,
		userID, leagueID,
	).Scan(&r.UserID, &r.LeagueID, &r.Elo, &r.ProvisionalMatches, &r.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return &PlayerRating{
				UserID:    userID,
				LeagueID:  leagueID,
				Elo:       DefaultElo,
				UpdatedAt: time.Now().Unix(),
			}, nil
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return &r, nil
}

func (s *store) UpsertRating(r PlayerRating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO ratings (user_id, league_id, elo, provisional_matches, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, league_id) DO UPDATE SET
			elo = excluded.elo,
			provisional_matches = excluded.provisional_matches,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, r.UserID, r.LeagueID, r.Elo, r.ProvisionalMatches, r.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	log.Info("Updated rating", "userID", r.UserID, "leagueID", r.LeagueID, "elo", r.Elo)
	return nil
}

func (s *store) GetStandings(leagueID string) ([]PlayerRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT user_id, league_id, elo, provisional_matches, updated_at FROM ratings WHERE league_id = ? ORDER BY elo DESC`,
		leagueID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []PlayerRating
	for rows.Next() {
		var r PlayerRating
		if err := rows.Scan(&r.UserID, &r.LeagueID, &r.Elo, &r.ProvisionalMatches, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		standings = append(standings, r)
	}
	return standings, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
