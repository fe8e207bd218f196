package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a WAL-mode SQLite database. The schema
// mirrors the original Postgres table, translated to SQLite syntax:
// gen_random_uuid() becomes an application-generated google/uuid value.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens path (a DSN or file path), enables WAL mode, and
// runs the leaderboard migration.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS retired_players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			score INTEGER NOT NULL CHECK (score >= 0),
			play_time_ms INTEGER NOT NULL CHECK (play_time_ms >= 0)
		)`,
		`CREATE INDEX IF NOT EXISTS results_show ON retired_players (score DESC, play_time_ms, name)`,
	}
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("store: migration failed: %w", err)
		}
	}
	return nil
}

// Save inserts a new retired-player record with a fresh uuid primary key.
func (s *SQLiteStore) Save(ctx context.Context, c Champion) error {
	id := uuid.New().String()
	playTimeMs := int64(c.PlayTimeS * 1000)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO retired_players (id, name, score, play_time_ms) VALUES (?, ?, ?, ?)`,
		id, c.Name, c.Score, playTimeMs,
	)
	if err != nil {
		return fmt.Errorf("store: save champion: %w", err)
	}
	return nil
}

// Top returns up to maxItems champions starting at offset start, ordered by
// (score DESC, play_time_ms ASC, name ASC).
func (s *SQLiteStore) Top(ctx context.Context, start, maxItems int) ([]Champion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, play_time_ms FROM retired_players
		 ORDER BY score DESC, play_time_ms, name
		 LIMIT ? OFFSET ?`,
		maxItems, start,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query top: %w", err)
	}
	defer rows.Close()

	var out []Champion
	for rows.Next() {
		var c Champion
		var playTimeMs int64
		if err := rows.Scan(&c.Name, &c.Score, &playTimeMs); err != nil {
			return nil, fmt.Errorf("store: scan champion: %w", err)
		}
		c.PlayTimeS = float64(playTimeMs) / 1000
		out = append(out, c)
	}
	return out, rows.Err()
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
