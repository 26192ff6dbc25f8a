package storage

import (
	"fmt"
	"time"
)

// Event kinds
const (
	KindKey  = "key"
	KindMenu = "menu"
	KindURL  = "url"
)

// Event is one journaled input event
type Event struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	KeyName   string    `json:"key_name,omitempty"`
	ScanCode  uint32    `json:"scancode,omitempty"`
	Modifiers string    `json:"modifiers,omitempty"`
	Pressed   bool      `json:"pressed,omitempty"`
	MenuID    int       `json:"menu_id,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// SaveEvent appends an event to the journal
func (db *DB) SaveEvent(e *Event) error {
	query := `
		INSERT INTO events (kind, source, key_name, scancode, modifiers, pressed, menu_id, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		e.Kind, e.Source, e.KeyName, e.ScanCode, e.Modifiers, e.Pressed, e.MenuID, e.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	e.ID = id
	return nil
}

// GetEvents retrieves events newest first with pagination. An empty kind
// selects every kind.
func (db *DB) GetEvents(kind string, limit, offset int) ([]Event, error) {
	query := `
		SELECT id, timestamp, kind, source, key_name, scancode, modifiers, pressed, menu_id, url
		FROM events
		WHERE ? = '' OR kind = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, kind, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		err := rows.Scan(
			&e.ID, &e.Timestamp, &e.Kind, &e.Source, &e.KeyName, &e.ScanCode,
			&e.Modifiers, &e.Pressed, &e.MenuID, &e.URL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// GetEventCount returns the number of journaled events of the given kind,
// or of all kinds when kind is empty
func (db *DB) GetEventCount(kind string) (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM events WHERE ? = '' OR kind = ?", kind, kind).Scan(&count)
	return count, err
}

// PruneEvents deletes events older than the given number of days
func (db *DB) PruneEvents(days int) (int64, error) {
	result, err := db.conn.Exec(`DELETE FROM events WHERE timestamp < datetime('now', '-' || ? || ' days')`, days)
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	return result.RowsAffected()
}
