package cache

import (
	"context"
	"errors"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
)

// CatalogCache fronts the product collection for the storefront's hot reads.
type CatalogCache interface {
	GetProduct(ctx context.Context, slug string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetProductList(ctx context.Context) ([]*domain.Product, error)
	SetProductList(ctx context.Context, products []*domain.Product) error
	Invalidate(ctx context.Context, slug string) error
}

var ErrCacheMiss = errors.New("cache miss")
