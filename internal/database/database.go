package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the database and ensures the schema is up to date.
// For local-only databases, dbPath is the filename and primaryURL is empty.
// For embedded replicas, primaryURL is the remote Turso URL.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, func(), error) {
	dsn := "file:" + dbPath
	if primaryURL != "" {
		log.Info("Initializing Turso database", "url", primaryURL)
		dsn = primaryURL + "?authToken=" + authToken
	} else {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
	}

	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = createTables(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create tables: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func createTables(db *sql.DB) error {
	// Foreign key support is not enabled by default in SQLite
	_, err := db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		log.Error("Error enabling foreign keys:", "error", err)
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS leagues (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS seasons (
			id TEXT PRIMARY KEY,
			league_id TEXT NOT NULL,
			name TEXT NOT NULL,
			starts_at INTEGER NOT NULL,
			ends_at INTEGER NOT NULL,
			active INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (league_id) REFERENCES leagues(id)
		);`,
		`CREATE TABLE IF NOT EXISTS rulesets (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			template_id TEXT NOT NULL,
			policy_mode TEXT NOT NULL,
			agent_ids_json TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE TABLE IF NOT EXISTS queues (
			id TEXT PRIMARY KEY,
			league_id TEXT NOT NULL,
			ruleset_id TEXT NOT NULL,
			challenge_id TEXT NOT NULL,
			name TEXT NOT NULL,
			FOREIGN KEY (league_id) REFERENCES leagues(id),
			FOREIGN KEY (ruleset_id) REFERENCES rulesets(id)
		);`,
		`CREATE TABLE IF NOT EXISTS agents (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS ratings (
			user_id TEXT NOT NULL,
			league_id TEXT NOT NULL,
			elo INTEGER NOT NULL DEFAULT 1200,
			provisional_matches INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, league_id),
			FOREIGN KEY (league_id) REFERENCES leagues(id)
		);`,
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			league_id TEXT NOT NULL,
			ruleset_id TEXT NOT NULL,
			challenge_id TEXT NOT NULL,
			season_id TEXT NOT NULL,
			players_json TEXT NOT NULL,
			draft_json TEXT NOT NULL,
			evidence_json TEXT NOT NULL,
			confirmed_by_json TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS matchmaking_tickets (
			id TEXT PRIMARY KEY,
			queue_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL,
			match_id TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS disputes (
			id TEXT PRIMARY KEY,
			match_id TEXT NOT NULL,
			opened_by TEXT NOT NULL,
			reason TEXT NOT NULL,
			status TEXT NOT NULL,
			decision TEXT,
			created_at INTEGER NOT NULL,
			resolved_at INTEGER
		);`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Info("Database initialized successfully")
	return nil
}
