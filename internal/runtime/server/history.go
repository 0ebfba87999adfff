// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/runtime/server/history.go
// Summary: A session-lifecycle event log for operator diagnostics,
// separate from the session's own structure/metadata persistence (§4.10):
// this never stores layout or pane content, only create/attach/detach/kill
// timestamps.

package server

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// HistoryEvent names a session lifecycle event recorded by History.
type HistoryEvent string

const (
	EventCreated HistoryEvent = "created"
	EventAttach  HistoryEvent = "attach"
	EventDetach  HistoryEvent = "detach"
	EventKilled  HistoryEvent = "killed"
)

// History is a sqlite-backed append log of session lifecycle events.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if absent) the sqlite database at dbPath.
func OpenHistory(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("server: create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("server: open history db: %w", err)
	}
	// sqlite tolerates only one writer; serialize at the pool level so
	// concurrent history writes never race each other into SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: set journal mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS session_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		session_name TEXT NOT NULL,
		event        TEXT NOT NULL,
		occurred_at  TEXT NOT NULL DEFAULT (datetime('now'))
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: create history schema: %w", err)
	}

	return &History{db: db}, nil
}

// Record appends an event for sessionName.
func (h *History) Record(sessionName string, event HistoryEvent) error {
	_, err := h.db.Exec(
		"INSERT INTO session_events (session_name, event) VALUES (?, ?)",
		sessionName, string(event),
	)
	if err != nil {
		return fmt.Errorf("server: record history event: %w", err)
	}
	return nil
}

// Recent returns the most recent n events for sessionName, newest first.
func (h *History) Recent(sessionName string, n int) ([]RecordedEvent, error) {
	rows, err := h.db.Query(
		"SELECT event, occurred_at FROM session_events WHERE session_name = ? ORDER BY id DESC LIMIT ?",
		sessionName, n,
	)
	if err != nil {
		return nil, fmt.Errorf("server: query history: %w", err)
	}
	defer rows.Close()

	var out []RecordedEvent
	for rows.Next() {
		var ev RecordedEvent
		if err := rows.Scan(&ev.Event, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("server: scan history row: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// RecordedEvent is one row read back from the history log.
type RecordedEvent struct {
	Event      string
	OccurredAt string
}

// Close closes the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
