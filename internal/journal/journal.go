// Package journal records every per-file outcome in a SQLite database
// so deletions stay auditable after the fact.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Actions recorded in the journal.
const (
	ActionDelete = "DELETE"
	ActionSkip   = "SKIP"
	ActionError  = "ERROR"
)

// Journal manages the SQLite database of per-file outcomes.
type Journal struct {
	db *sql.DB
}

// Entry is a single per-file outcome.
type Entry struct {
	ID          int64
	Timestamp   time.Time
	Action      string // DELETE, SKIP, ERROR
	Drive       string // drive letter, e.g. "A"
	Name        string // 8.3 filename
	Size        int64
	Reason      string // deleted, not_found, read_only, declined, delete_failed
	Forced      bool   // -f was in effect
	Interactive bool   // -i was in effect
	ErrorMsg    string
	CreatedAt   time.Time
}

// New opens (creating if needed) the journal database and initializes
// its schema.
func New(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory %s: %w", dir, err)
		}
	}

	// file: prefix with _loc=auto enables automatic DATETIME parsing
	db, err := sql.Open("sqlite3", "file:"+path+"?_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// A plain exec both probes the connection and forces file creation
	if _, err = db.Exec("SELECT 1"); err != nil {
		return nil, fmt.Errorf("failed to initialize journal (check permissions on %s): %w", path, err)
	}

	if _, err = db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err = db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	j := &Journal{db: db}
	if err = j.initSchema(); err != nil {
		return nil, err
	}

	err = nil
	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deletions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		action TEXT NOT NULL,
		drive TEXT NOT NULL,
		name TEXT NOT NULL,
		size INTEGER NOT NULL,

		reason TEXT,
		forced INTEGER NOT NULL DEFAULT 0,
		interactive INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,

		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_timestamp ON deletions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_action ON deletions(action);
	CREATE INDEX IF NOT EXISTS idx_name ON deletions(name);
	CREATE INDEX IF NOT EXISTS idx_reason ON deletions(reason);
	CREATE INDEX IF NOT EXISTS idx_size ON deletions(size);

	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	INSERT OR IGNORE INTO schema_version (version) VALUES (1);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record inserts one per-file outcome.
func (j *Journal) Record(e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
	INSERT INTO deletions (
		timestamp, action, drive, name, size,
		reason, forced, interactive, error_message
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.Exec(
		query,
		e.Timestamp,
		e.Action,
		e.Drive,
		e.Name,
		e.Size,
		e.Reason,
		e.Forced,
		e.Interactive,
		e.ErrorMsg,
	)
	return err
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Vacuum optimizes the database (run occasionally).
func (j *Journal) Vacuum() error {
	_, err := j.db.Exec("VACUUM")
	return err
}
