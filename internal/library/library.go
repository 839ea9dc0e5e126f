// Package library keeps a local catalog of analyzed replays in SQLite.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

// ErrNotFound is returned when a record is missing from the library.
var ErrNotFound = errors.New("library: record not found")

// Record is one cataloged replay.
type Record struct {
	ID              int64     `json:"id"`
	GameID          string    `json:"game_id,omitempty"`
	Path            string    `json:"path"`
	MapName         string    `json:"map_name"`
	DurationSeconds float64   `json:"duration_seconds"`
	Players         []string  `json:"players"`
	AddedAt         time.Time `json:"added_at"`
}

// Library is the replay catalog.
type Library struct {
	*sql.DB
}

// Open opens (and if needed creates) the catalog database at path.
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL UNIQUE,
			map_name TEXT,
			duration_seconds DOUBLE,
			players TEXT,
			added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Library{DB: db}, nil
}

// Add catalogs a loaded match under its file path. gameID may be empty
// for replays that were not downloaded by id. Re-adding the same path
// replaces the earlier entry.
func (l *Library) Add(ctx context.Context, gameID, path string, m *aoe2stat.Match) (int64, error) {
	names := make([]string, len(m.Players))
	for i, p := range m.Players {
		names[i] = p.Name
	}
	playersJSON, err := json.Marshal(names)
	if err != nil {
		return 0, err
	}

	res, err := l.ExecContext(ctx, `
		INSERT INTO replays (game_id, path, map_name, duration_seconds, players)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			game_id = excluded.game_id,
			map_name = excluded.map_name,
			duration_seconds = excluded.duration_seconds,
			players = excluded.players
	`, gameID, path, m.MapName, m.DurationSeconds, string(playersJSON))
	if err != nil {
		return 0, fmt.Errorf("insert replay: %w", err)
	}
	return res.LastInsertId()
}

// List returns all cataloged replays, newest first.
func (l *Library) List(ctx context.Context) ([]Record, error) {
	rows, err := l.QueryContext(ctx, `
		SELECT id, game_id, path, map_name, duration_seconds, players, added_at
		FROM replays ORDER BY added_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r           Record
			playersJSON string
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.Path, &r.MapName, &r.DurationSeconds, &playersJSON, &r.AddedAt); err != nil {
			return nil, err
		}
		if playersJSON != "" {
			if err := json.Unmarshal([]byte(playersJSON), &r.Players); err != nil {
				return nil, fmt.Errorf("record %d players: %w", r.ID, err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns the record for a replay path.
func (l *Library) Get(ctx context.Context, path string) (Record, error) {
	var (
		r           Record
		playersJSON string
	)
	err := l.QueryRowContext(ctx, `
		SELECT id, game_id, path, map_name, duration_seconds, players, added_at
		FROM replays WHERE path = ?
	`, path).Scan(&r.ID, &r.GameID, &r.Path, &r.MapName, &r.DurationSeconds, &playersJSON, &r.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if playersJSON != "" {
		if err := json.Unmarshal([]byte(playersJSON), &r.Players); err != nil {
			return Record{}, fmt.Errorf("record %d players: %w", r.ID, err)
		}
	}
	return r, nil
}

// Remove deletes the record for a replay path.
func (l *Library) Remove(ctx context.Context, path string) error {
	res, err := l.ExecContext(ctx, `DELETE FROM replays WHERE path = ?`, path)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
