package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"trivia-quiz-service/internal/domain"
)

// PackLoader fetches question packs from a backing store (pack files, Postgres).
type PackLoader interface {
	LoadPack(ctx context.Context, packID string) (domain.Pack, error)
}

// PackRepository caches whole packs in Redis and falls back to a loader on cache miss.
// Packs are stored as JSON: SET quiz:pack:{packID} {json} EX ttl
type PackRepository struct {
	client *redis.Client
	loader PackLoader
	ttl    time.Duration
	logger *zap.Logger
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewPackRepository(client *redis.Client, loader PackLoader, ttl time.Duration, logger *zap.Logger) *PackRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *PackRepository) GetPack(ctx context.Context, packID string) (domain.Pack, error) {
	if pack, ok := r.cached(ctx, packID); ok {
		return pack, nil
	}

	result, err, _ := r.sf.Do(packID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if pack, ok := r.cached(ctx, packID); ok {
			return pack, nil
		}

		pack, err := r.loader.LoadPack(ctx, packID)
		if err != nil {
			return domain.Pack{}, err
		}

		data, err := json.Marshal(pack)
		if err != nil {
			r.logger.Warn("encode pack for cache", zap.String("pack_id", packID), zap.Error(err))
			return pack, nil
		}
		if err := r.client.Set(ctx, r.key(packID), data, r.ttlWithJitter()).Err(); err != nil {
			r.logger.Warn("cache pack", zap.String("pack_id", packID), zap.Error(err))
		}
		return pack, nil
	})
	if err != nil {
		return domain.Pack{}, err
	}
	return result.(domain.Pack), nil
}

// Invalidate drops the cached copy so the next GetPack reloads it.
func (r *PackRepository) Invalidate(ctx context.Context, packID string) error {
	return r.client.Del(ctx, r.key(packID)).Err()
}

func (r *PackRepository) cached(ctx context.Context, packID string) (domain.Pack, bool) {
	data, err := r.client.Get(ctx, r.key(packID)).Bytes()
	if err != nil {
		return domain.Pack{}, false
	}
	var pack domain.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return domain.Pack{}, false
	}
	return pack, true
}

func (r *PackRepository) key(packID string) string {
	return "quiz:pack:" + packID
}

func (r *PackRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// isMiss reports whether err means the key does not exist.
func isMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
