package sinks

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"wildmark/server/logging"
)

// SQLite journals events to a local database file so gameplay incidents can
// be inspected after the fact without scraping the console stream.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	tick      INTEGER NOT NULL,
	time      TEXT NOT NULL,
	type      TEXT NOT NULL,
	severity  INTEGER NOT NULL,
	category  TEXT,
	actor     TEXT,
	targets   TEXT,
	payload   TEXT
);
CREATE INDEX IF NOT EXISTS idx_events_tick ON events(tick);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
`

func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite sink: empty path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite sink: open %s: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite sink: migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Write(event logging.Event) error {
	if s == nil || s.db == nil {
		return nil
	}
	actor, err := json.Marshal(event.Actor)
	if err != nil {
		return err
	}
	var targets []byte
	if len(event.Targets) > 0 {
		if targets, err = json.Marshal(event.Targets); err != nil {
			return err
		}
	}
	var payload []byte
	if event.Payload != nil {
		if payload, err = json.Marshal(event.Payload); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO events (tick, time, type, severity, category, actor, targets, payload) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.Tick,
		event.Time.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		string(event.Type),
		int(event.Severity),
		event.Category,
		string(actor),
		nullable(targets),
		nullable(payload),
	)
	return err
}

func nullable(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	return string(data)
}

// CountByType reports how many journaled events carry the given type. Used by
// diagnostics and tests.
func (s *SQLite) CountByType(eventType logging.EventType) (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.db.QueryRow(`SELECT COUNT(*) FROM events WHERE type = ?`, string(eventType))
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLite) Close(context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.db.Close()
	s.db = nil
	return err
}
