// Package draft persists the in-progress session to a local SQLite file so
// an interrupted workout can be resumed later.
package draft

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stridefit/stride/internal/session"
)

// ErrNoDraft means no saved draft exists.
var ErrNoDraft = errors.New("no saved draft")

// DB stores at most one draft per user in dir/drafts.db.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the draft database under dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating draft dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "drafts.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening draft db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS drafts (
		user_id  TEXT PRIMARY KEY,
		session  TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating drafts table: %w", err)
	}

	return &DB{db: db}, nil
}

// Save replaces the user's draft with the given session snapshot.
func (d *DB) Save(userID string, snap session.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	_, err = d.db.Exec(
		`INSERT OR REPLACE INTO drafts (user_id, session, saved_at) VALUES (?, ?, ?)`,
		userID, string(data), time.Now().UTC(),
	)
	return err
}

// Load returns the user's saved draft, or ErrNoDraft when none exists.
func (d *DB) Load(userID string) (session.Snapshot, error) {
	var raw string
	err := d.db.QueryRow(`SELECT session FROM drafts WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Snapshot{}, ErrNoDraft
	}
	if err != nil {
		return session.Snapshot{}, err
	}

	var snap session.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return session.Snapshot{}, fmt.Errorf("decoding draft: %w", err)
	}
	return snap, nil
}

// Clear removes the user's draft. Clearing a missing draft is a no-op.
func (d *DB) Clear(userID string) error {
	_, err := d.db.Exec(`DELETE FROM drafts WHERE user_id = ?`, userID)
	return err
}

// Close closes the draft database.
func (d *DB) Close() error {
	return d.db.Close()
}
