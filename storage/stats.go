package storage

import (
	"fmt"
)

// DailyStats represents statistics for a single day
type DailyStats struct {
	Date        string `json:"date"`
	TotalEvents int    `json:"total_events"`
	KeyEvents   int    `json:"key_events"`
	Activations int    `json:"activations"`
	URLOpens    int    `json:"url_opens"`
}

// ActivationStats represents how often one menu item was activated
type ActivationStats struct {
	MenuID      int    `json:"menu_id"`
	Activations int    `json:"activations"`
	ViaKeyboard int    `json:"via_keyboard"`
	LastSeen    string `json:"last_seen"`
}

// SourceStats represents activations grouped by the source that fired them
type SourceStats struct {
	Source      string `json:"source"`
	Activations int    `json:"activations"`
}

// OverallStats represents overall statistics
type OverallStats struct {
	TotalEvents   int `json:"total_events"`
	KeyEvents     int `json:"key_events"`
	KeyPresses    int `json:"key_presses"`
	Activations   int `json:"activations"`
	URLOpens      int `json:"url_opens"`
	DistinctItems int `json:"distinct_items"`
}

// GetDailyStats retrieves statistics grouped by date for the last N days
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*) as total_events,
			SUM(CASE WHEN kind = 'key' THEN 1 ELSE 0 END) as key_events,
			SUM(CASE WHEN kind = 'menu' THEN 1 ELSE 0 END) as activations,
			SUM(CASE WHEN kind = 'url' THEN 1 ELSE 0 END) as url_opens
		FROM events
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
		err := rows.Scan(&s.Date, &s.TotalEvents, &s.KeyEvents, &s.Activations, &s.URLOpens)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetActivationStats retrieves per-item activation counts for the last N
// days, most used first
func (db *DB) GetActivationStats(days int) ([]ActivationStats, error) {
	query := `
		SELECT
			menu_id,
			COUNT(*) as activations,
			SUM(CASE WHEN source IN ('accelerator', 'global') THEN 1 ELSE 0 END) as via_keyboard,
			CAST(MAX(timestamp) AS TEXT) as last_seen
		FROM events
		WHERE kind = 'menu' AND timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY menu_id
		ORDER BY activations DESC, menu_id ASC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query activation stats: %w", err)
	}
	defer rows.Close()

	var stats []ActivationStats
	for rows.Next() {
		var s ActivationStats
		err := rows.Scan(&s.MenuID, &s.Activations, &s.ViaKeyboard, &s.LastSeen)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activation stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetSourceStats retrieves activations grouped by source for the last N days
func (db *DB) GetSourceStats(days int) ([]SourceStats, error) {
	query := `
		SELECT source, COUNT(*) as activations
		FROM events
		WHERE kind = 'menu' AND timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY source
		ORDER BY activations DESC, source ASC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query source stats: %w", err)
	}
	defer rows.Close()

	var stats []SourceStats
	for rows.Next() {
		var s SourceStats
		if err := rows.Scan(&s.Source, &s.Activations); err != nil {
			return nil, fmt.Errorf("failed to scan source stats: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GetOverallStats retrieves overall statistics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_events,
			COALESCE(SUM(CASE WHEN kind = 'key' THEN 1 ELSE 0 END), 0) as key_events,
			COALESCE(SUM(CASE WHEN kind = 'key' AND pressed = 1 THEN 1 ELSE 0 END), 0) as key_presses,
			COALESCE(SUM(CASE WHEN kind = 'menu' THEN 1 ELSE 0 END), 0) as activations,
			COALESCE(SUM(CASE WHEN kind = 'url' THEN 1 ELSE 0 END), 0) as url_opens,
			COUNT(DISTINCT CASE WHEN kind = 'menu' THEN menu_id END) as distinct_items
		FROM events
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalEvents,
		&stats.KeyEvents,
		&stats.KeyPresses,
		&stats.Activations,
		&stats.URLOpens,
		&stats.DistinctItems,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
