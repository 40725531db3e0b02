package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/sadopc/shiftlog/internal/logger"
)

const currentVersion = 1

// Store persists journeys and settings in SQLite. It keeps a single
// connection, so writes are serialized.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Debug("store opened", "path", dbPath)
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}
	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	logger.Info("database migrated", "from", version, "to", currentVersion)
	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS journeys (
		id            TEXT PRIMARY KEY,
		date          TEXT NOT NULL,
		start_at      TEXT,
		end_at        TEXT,
		meal_minutes  INTEGER NOT NULL DEFAULT 0,
		rest_minutes  INTEGER,
		is_holiday    INTEGER NOT NULL DEFAULT 0,
		km_start      TEXT,
		km_end        TEXT,
		external_ref  TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_journeys_date ON journeys(date);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('base_shift_minutes', '440'),
		('distance_tracking',  'false'),
		('cycle_start_day',    '1'),
		('rotation_pattern',   '6x2'),
		('rotation_anchor',    ''),
		('week_start',         'sunday'),
		('onboarded',          'false');
	`
	_, err := s.db.Exec(ddl)
	return err
}
