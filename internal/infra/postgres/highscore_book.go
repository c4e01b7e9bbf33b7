package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// HighScoreBook keeps best scores in the high_scores table.
type HighScoreBook struct {
	pool *pgxpool.Pool
}

func NewHighScoreBook(pool *pgxpool.Pool) *HighScoreBook {
	return &HighScoreBook{pool: pool}
}

func (b *HighScoreBook) Get(ctx context.Context, playerID string) (int, error) {
	var score int
	err := b.pool.QueryRow(ctx, `SELECT score FROM high_scores WHERE player_id=$1`, playerID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return score, nil
}

// Set records score unless the player already has a higher one.
func (b *HighScoreBook) Set(ctx context.Context, playerID string, score int) error {
	_, err := b.pool.Exec(ctx, `
INSERT INTO high_scores (player_id, score, updated_at) VALUES ($1, $2, now())
ON CONFLICT (player_id) DO UPDATE SET score=EXCLUDED.score, updated_at=EXCLUDED.updated_at
WHERE EXCLUDED.score > high_scores.score`, playerID, score)
	if err != nil {
		return fmt.Errorf("set high score: %w", err)
	}
	return nil
}
