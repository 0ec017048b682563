package storage

import (
	"fmt"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date          string `json:"date"`
	TotalPolishes int    `json:"totalPolishes"`
	TotalChars    int    `json:"totalChars"`
	SuccessCount  int    `json:"successCount"`
	FailureCount  int    `json:"failureCount"`
}

// ProviderStats represents statistics grouped by provider
type ProviderStats struct {
	Provider      string  `json:"provider"`
	TotalPolishes int     `json:"totalPolishes"`
	SuccessCount  int     `json:"successCount"`
	FailureCount  int     `json:"failureCount"`
	AvgLatencyMs  float64 `json:"avgLatencyMs"`
}

// OverallStats represents overall statistics
type OverallStats struct {
	TotalPolishes int     `json:"totalPolishes"`
	TotalChars    int64   `json:"totalChars"`
	SuccessCount  int     `json:"successCount"`
	FailureCount  int     `json:"failureCount"`
	AvgLatencyMs  float64 `json:"avgLatencyMs"`
	AvgInputChars float64 `json:"avgInputChars"`
}

// GetDailyStats retrieves statistics grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_polishes,
			COALESCE(SUM(input_chars), 0) as total_chars,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count
		FROM polishes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		err := rows.Scan(&s.Date, &s.TotalPolishes, &s.TotalChars, &s.SuccessCount, &s.FailureCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetProviderStats retrieves statistics grouped by provider for the last N days
func (db *DB) GetProviderStats(days int) ([]ProviderStats, error) {
	query := `
		SELECT
			provider,
			COUNT(*) as total_polishes,
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END) as failure_count,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms
		FROM polishes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY provider
		ORDER BY total_polishes DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider stats: %w", err)
	}
	defer rows.Close()

	var stats []ProviderStats
	for rows.Next() {
		var s ProviderStats
		err := rows.Scan(&s.Provider, &s.TotalPolishes, &s.SuccessCount, &s.FailureCount, &s.AvgLatencyMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall statistics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_polishes,
			COALESCE(SUM(input_chars), 0) as total_chars,
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0) as success_count,
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0) as failure_count,
			COALESCE(AVG(latency_ms), 0) as avg_latency_ms,
			COALESCE(AVG(input_chars), 0) as avg_input_chars
		FROM polishes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalPolishes,
		&stats.TotalChars,
		&stats.SuccessCount,
		&stats.FailureCount,
		&stats.AvgLatencyMs,
		&stats.AvgInputChars,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
