package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentSchemaVersion = 1

// SQLiteTier is the durable storage tier, backed by a key/value table
// in a SQLite database.
type SQLiteTier struct {
	db   *sql.DB
	path string
}

// NewSQLiteTier opens (creating if needed) the database at path.
func NewSQLiteTier(path string) (*SQLiteTier, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteTier{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Name implements Tier.
func (s *SQLiteTier) Name() string { return "sqlite" }

// Path returns the database file path.
func (s *SQLiteTier) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteTier) Close() error { return s.db.Close() }

func (s *SQLiteTier) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		schema := `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS documents (
				key TEXT PRIMARY KEY NOT NULL,
				value TEXT NOT NULL
			);

			INSERT OR REPLACE INTO schema_version (version) VALUES (1);
		`
		if _, err := s.db.Exec(schema); err != nil {
			return err
		}
	}

	return nil
}

// Read implements Tier.
func (s *SQLiteTier) Read(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM documents WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Write implements Tier.
func (s *SQLiteTier) Write(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(data))
	return err
}

// DefaultSQLitePath returns the default database path: ~/.config/snip/snip.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "snip", "snip.db"), nil
}
