package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
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

	s := &Store{db: db, log: slog.Default()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// WithLogger sets the logger used for store events.
func (s *Store) WithLogger(l *slog.Logger) *Store {
	if l != nil {
		s.log = l
	}
	return s
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

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS workouts (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at   TEXT NOT NULL,
		finished_at  TEXT NOT NULL,
		elapsed      INTEGER NOT NULL DEFAULT 0,
		partial      INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_finished ON workouts(finished_at);

	CREATE TABLE IF NOT EXISTS workout_exercises (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id     INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
		position       INTEGER NOT NULL,
		exercise_id    TEXT NOT NULL,
		name           TEXT NOT NULL,
		muscle_groups  TEXT NOT NULL DEFAULT '',
		equipment      TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id);

	CREATE TABLE IF NOT EXISTS workout_sets (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_exercise_id  INTEGER NOT NULL REFERENCES workout_exercises(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		set_uid              TEXT NOT NULL,
		reps                 INTEGER,
		weight               REAL
	);

	CREATE INDEX IF NOT EXISTS idx_workout_sets_exercise ON workout_sets(workout_exercise_id);

	CREATE TABLE IF NOT EXISTS templates (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		exercises   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('profile_name',   'Athlete'),
		('profile_age',    ''),
		('profile_gender', ''),
		('unit',           'kg'),
		('weekly_goal',    '4');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/liftr/liftr.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "liftr", "liftr.db"), nil
}
