package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS high_scores (
    player_id TEXT PRIMARY KEY,
    score INTEGER NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// HighScoreBook keeps best scores in a local SQLite file.
type HighScoreBook struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*HighScoreBook, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &HighScoreBook{db: db}, nil
}

func (b *HighScoreBook) Get(ctx context.Context, playerID string) (int, error) {
	var score int
	err := b.db.QueryRowContext(ctx, `SELECT score FROM high_scores WHERE player_id = ?`, playerID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return score, nil
}

// Set records score unless the player already has a higher one.
func (b *HighScoreBook) Set(ctx context.Context, playerID string, score int) error {
	_, err := b.db.ExecContext(ctx, `
INSERT INTO high_scores (player_id, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(player_id) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
WHERE excluded.score > high_scores.score`, playerID, score)
	if err != nil {
		return fmt.Errorf("set high score: %w", err)
	}
	return nil
}

func (b *HighScoreBook) Close() error {
	return b.db.Close()
}
