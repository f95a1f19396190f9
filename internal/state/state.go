package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS launches (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    project      TEXT NOT NULL,
    session      TEXT NOT NULL,
    action       TEXT NOT NULL,
    tmux_version TEXT NOT NULL DEFAULT '',
    commands     INTEGER NOT NULL DEFAULT 0,
    duration_ms  INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_launches_project ON launches(project, created_at);
`

// Store wraps a SQLite database holding the launch history.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at
// $XDG_STATE_HOME/muxup/state.db.
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}
	dir := filepath.Join(stateHome, "muxup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return OpenPath(filepath.Join(dir, "state.db"))
}

// OpenPath opens the history database at an explicit path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL mode for safe concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	// Run migrations (ignore errors for already-existing columns)
	for _, m := range []string{
		"ALTER TABLE launches ADD COLUMN tmux_version TEXT NOT NULL DEFAULT ''",
		"ALTER TABLE launches ADD COLUMN commands INTEGER NOT NULL DEFAULT 0",
		"ALTER TABLE launches ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0",
	} {
		db.Exec(m) //nolint:errcheck
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Launch is one history row.
type Launch struct {
	Project     string
	Session     string
	Action      string // "create" or "attach"
	TmuxVersion string
	Commands    int
	Duration    time.Duration
	At          time.Time
}

// Record appends one launch to the history.
func (s *Store) Record(l Launch) error {
	at := l.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO launches (project, session, action, tmux_version, commands, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.Project, l.Session, l.Action, l.TmuxVersion, l.Commands,
		l.Duration.Milliseconds(), at.UTC().Format(timeLayout))
	return err
}

// LastByProject returns each project's most recent launch.
func (s *Store) LastByProject() (map[string]Launch, error) {
	rows, err := s.db.Query(`
		SELECT project, session, action, tmux_version, commands, duration_ms,
			MAX(created_at) AS created_at
		FROM launches
		GROUP BY project
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]Launch)
	for rows.Next() {
		l, err := scanLaunch(rows)
		if err != nil {
			return nil, err
		}
		result[l.Project] = l
	}
	return result, rows.Err()
}

// Recent returns the newest launches first.
func (s *Store) Recent(limit int) ([]Launch, error) {
	rows, err := s.db.Query(`
		SELECT project, session, action, tmux_version, commands, duration_ms, created_at
		FROM launches
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Launch
	for rows.Next() {
		l, err := scanLaunch(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func scanLaunch(rows *sql.Rows) (Launch, error) {
	var l Launch
	var ms int64
	var at string
	if err := rows.Scan(&l.Project, &l.Session, &l.Action, &l.TmuxVersion, &l.Commands, &ms, &at); err != nil {
		return Launch{}, err
	}
	l.Duration = time.Duration(ms) * time.Millisecond
	l.At, _ = time.Parse(timeLayout, at)
	return l, nil
}
