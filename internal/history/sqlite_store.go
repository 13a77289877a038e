package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

// SQLiteStore keeps the history in a SQLite table, one row per entry,
// ordered by position (0 is the most recent).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens or creates the database at path and migrates it
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("open history db: mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// a single connection keeps writes serialised
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ReadAll() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT id, created_at, types, workout FROM workouts ORDER BY position;`)
	if err != nil {
		return nil, fmt.Errorf("read history: query: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var types string
		if err := rows.Scan(&e.ID, &e.Timestamp, &types, &e.Workout); err != nil {
			return nil, fmt.Errorf("read history: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(types), &e.Types); err != nil {
			return nil, fmt.Errorf("%w: entry %s types: %v", ErrCorrupt, e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: rows: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) WriteAll(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write history: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM workouts;`); err != nil {
		return fmt.Errorf("write history: delete: %w", err)
	}
	for i, e := range entries {
		types := e.Types
		if types == nil {
			types = []workout.FocusType{}
		}
		rawTypes, err := json.Marshal(types)
		if err != nil {
			return fmt.Errorf("write history: marshal types: %w", err)
		}
		_, err = tx.Exec(`INSERT INTO workouts (position, id, created_at, types, workout) VALUES (?, ?, ?, ?, ?);`,
			i, e.ID, e.Timestamp, string(rawTypes), e.Workout)
		if err != nil {
			return fmt.Errorf("write history: insert %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write history: commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM workouts;`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
