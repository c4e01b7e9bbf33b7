package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// setIfHigher writes ARGV[1] to KEYS[1] only when it beats the stored value.
var setIfHigher = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0")
if tonumber(ARGV[1]) > current then
	redis.call("SET", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// HighScoreBook stores one best score per player: SET quiz:highscore:{playerID} {score}
type HighScoreBook struct {
	client *redis.Client
}

func NewHighScoreBook(client *redis.Client) *HighScoreBook {
	return &HighScoreBook{client: client}
}

func (b *HighScoreBook) Get(ctx context.Context, playerID string) (int, error) {
	score, err := b.client.Get(ctx, b.key(playerID)).Int()
	if isMiss(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get high score: %w", err)
	}
	return score, nil
}

// Set records score unless the player already has a higher one.
func (b *HighScoreBook) Set(ctx context.Context, playerID string, score int) error {
	if err := setIfHigher.Run(ctx, b.client, []string{b.key(playerID)}, score).Err(); err != nil {
		return fmt.Errorf("set high score: %w", err)
	}
	return nil
}

func (b *HighScoreBook) key(playerID string) string {
	return "quiz:highscore:" + playerID
}
