package memory

import (
	"context"
	"sync"
)

// HighScoreBook keeps best scores in a map. Unknown players have a high score of 0.
type HighScoreBook struct {
	mu     sync.RWMutex
	scores map[string]int
}

func NewHighScoreBook() *HighScoreBook {
	return &HighScoreBook{scores: make(map[string]int)}
}

func (b *HighScoreBook) Get(_ context.Context, playerID string) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.scores[playerID], nil
}

// Set records score unless the player already has a higher one.
func (b *HighScoreBook) Set(_ context.Context, playerID string, score int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if score > b.scores[playerID] {
		b.scores[playerID] = score
	}
	return nil
}
