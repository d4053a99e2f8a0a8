package cache

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

const listKey = "products:all"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	data, err := r.client.Get(ctx, productKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product domain.Product
	if err2 := json.Unmarshal(data, &product); err2 != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err2)
	}
	return &product, nil
}

func (r *RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	if err := r.client.Set(ctx, productKey(product.Slug), data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) GetProductList(ctx context.Context) ([]*domain.Product, error) {
	data, err := r.client.Get(ctx, listKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var products []*domain.Product
	if err2 := json.Unmarshal(data, &products); err2 != nil {
		return nil, fmt.Errorf("unmarshal product list failed: %w", err2)
	}
	return products, nil
}

func (r *RedisCache) SetProductList(ctx context.Context, products []*domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("marshal product list failed: %w", err)
	}
	if err := r.client.Set(ctx, listKey, data, r.ttl()).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached product and the list; any catalog write makes
// the list stale.
func (r *RedisCache) Invalidate(ctx context.Context, slug string) error {
	keys := []string{listKey}
	if slug != "" {
		keys = append(keys, productKey(slug))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) ttl() time.Duration {
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	return r.baseTTL + jitter
}

func productKey(slug string) string {
	return fmt.Sprintf("product:%s", slug)
}
