// Package history persists evaluated expressions and their results in a
// per-user sqlite database.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	expression TEXT NOT NULL,
	result     TEXT NOT NULL,
	today      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
`

// Entry is one recorded evaluation.
type Entry struct {
	ID         int64
	Expression string
	Result     string
	Today      string // reference date the expression was evaluated against
	CreatedAt  time.Time
}

// DB wraps the history database connection.
type DB struct {
	conn *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record stores one evaluation.
func (db *DB) Record(expression, result, today string) error {
	_, err := db.conn.Exec(
		"INSERT INTO evaluations (expression, result, today, created_at) VALUES (?, ?, ?, ?)",
		expression, result, today, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record evaluation: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. limit <= 0 means all.
func (db *DB) List(limit int) ([]Entry, error) {
	q := "SELECT id, expression, result, today, created_at FROM evaluations ORDER BY id DESC"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.conn.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = db.conn.Query(q)
	}
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Expression, &e.Result, &e.Today, &created); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, created); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM evaluations").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear removes all entries.
func (db *DB) Clear() error {
	if _, err := db.conn.Exec("DELETE FROM evaluations"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Prune keeps only the newest keep entries.
func (db *DB) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := db.conn.Exec(
		"DELETE FROM evaluations WHERE id NOT IN (SELECT id FROM evaluations ORDER BY id DESC LIMIT ?)",
		keep,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}
