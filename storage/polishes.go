package storage

import (
	"fmt"
	"time"
)

// Trigger values for a polish record
const (
	TriggerHotkey = "hotkey"
	TriggerTray   = "tray"
	TriggerCLI    = "cli"
)

// Polish represents one rephrase request's metrics. No clipboard or rewrite
// text is kept here.
type Polish struct {
	ID           int64
	Timestamp    time.Time
	Trigger      string
	Provider     string
	Model        string
	Tone         string
	InputChars   int
	Alternatives int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// SavePolish saves a polish record to the database
func (db *DB) SavePolish(p *Polish) error {
	query := `
		INSERT INTO polishes (
			trigger_kind, provider, model, tone,
			input_chars, alternatives, latency_ms,
			success, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		p.Trigger, p.Provider, p.Model, p.Tone,
		p.InputChars, p.Alternatives, p.LatencyMs,
		p.Success, p.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to save polish record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	p.ID = id
	return nil
}

// GetPolishCount returns the total number of recorded polishes
func (db *DB) GetPolishCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM polishes").Scan(&count)
	return count, err
}
