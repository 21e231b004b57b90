// Package store persists everything the app remembers between runs:
// the append-only attempt history, the last scored result, and the
// local user accounts. It is a thin raw-SQL layer over SQLite.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and hands out repositories.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates any missing tables.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Attempts returns the attempt-history repository backed by this store.
func (s *Store) Attempts() AttemptRepo {
	return &attemptRepo{db: s.db, logger: s.logger}
}

// Users returns the account repository backed by this store.
func (s *Store) Users() UserRepo {
	return &userRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			email         TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id         TEXT PRIMARY KEY,
			email      TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			payload    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_email_created
			ON attempts (email, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec ddl: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MOCKMATE_DB environment variable
// 2. $XDG_DATA_HOME/mockmate/mockmate.db
// 3. ~/.local/share/mockmate/mockmate.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MOCKMATE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "mockmate", "mockmate.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
