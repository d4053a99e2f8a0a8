package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client:  client,
		baseTTL: 90 * 24 * time.Hour,
	}
}

// RedisStorage keeps one serialized line collection per session so a cart
// survives reloads of the same client session.
type RedisStorage struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, storageKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []domain.CartLine
	if err2 := json.Unmarshal(data, &lines); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}
	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(60)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, storageKey(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, storageKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func storageKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
