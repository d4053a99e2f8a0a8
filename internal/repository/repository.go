package repository

import (
	"context"
	"errors"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrArticleNotFound     = errors.New("article not found")
	ErrDuplicateSubmission = errors.New("order for this submission token already exists")
	ErrVerdictAlreadySet   = errors.New("compliance verdict already attached")
)

// Indexer is implemented by repositories that maintain collection indexes.
type Indexer interface {
	CreateIndexes(ctx context.Context) error
}

// EnsureIndexes creates indexes for every repository that declares them.
func EnsureIndexes(ctx context.Context, repos ...any) error {
	for _, r := range repos {
		if idx, ok := r.(Indexer); ok {
			if err := idx.CreateIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// OrderRepository stores placed orders. The backing document store offers
// single-document atomicity only; no cross-document transactions are assumed.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) (string, error)
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	GetOrderBySubmissionToken(ctx context.Context, token string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	SetVerdict(ctx context.Context, id string, verdict domain.ComplianceVerdict) error
	DeleteOrder(ctx context.Context, id string) error
}

// ProductRepository stores the book catalog.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ListFeaturedProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (string, error)
	UpdateProduct(ctx context.Context, id string, product *domain.Product) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	DeleteProduct(ctx context.Context, id string) error
}

// ArticleRepository stores editorial articles.
type ArticleRepository interface {
	ListArticles(ctx context.Context) ([]*domain.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error)
	CreateArticle(ctx context.Context, article *domain.Article) (string, error)
	UpdateArticle(ctx context.Context, id string, article *domain.Article) error
	DeleteArticle(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
}
