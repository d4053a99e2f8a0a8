package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func book(slug string) *domain.Product {
	return &domain.Product{ID: "id-" + slug, Name: "Book " + slug, Slug: slug, Price: 4500, Author: "A. Author"}
}

func TestProductRoundTrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.SetProduct(ctx, book("things-fall-apart")))

	got, err := cache.GetProduct(ctx, "things-fall-apart")
	require.NoError(t, err)
	assert.Equal(t, "Book things-fall-apart", got.Name)
	assert.Equal(t, 4500.0, got.Price)
}

func TestGetProduct_Miss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	got, err := cache.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestGetProduct_CorruptData(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set("product:bad", "{broken"))

	_, err := cache.GetProduct(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestProductListRoundTrip(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.SetProductList(ctx, []*domain.Product{book("a"), book("b")}))

	got, err := cache.GetProductList(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Slug)
}

func TestInvalidate_DropsProductAndList(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, cache.SetProduct(ctx, book("a")))
	require.NoError(t, cache.SetProductList(ctx, []*domain.Product{book("a")}))

	require.NoError(t, cache.Invalidate(ctx, "a"))

	_, err := cache.GetProduct(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.GetProductList(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
