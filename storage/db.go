package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
}

// Open opens the database and initializes the schema
func Open(configDir string) (*DB, error) {
	dbPath := filepath.Join(configDir, "polishclip.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the database schema. Only usage metrics are stored;
// neither the source text nor the rewrites ever touch disk.
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS polishes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,

		-- Where the request came from (trigger is reserved in SQLite)
		trigger_kind TEXT NOT NULL,

		-- Provider info
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		tone TEXT NOT NULL,

		-- Request metrics
		input_chars INTEGER NOT NULL,
		alternatives INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,

		-- Status
		success BOOLEAN NOT NULL,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_polishes_timestamp ON polishes(timestamp);
	CREATE INDEX IF NOT EXISTS idx_polishes_provider ON polishes(provider);
	CREATE INDEX IF NOT EXISTS idx_polishes_success ON polishes(success);
	`

	_, err := db.conn.Exec(schema)
	return err
}
