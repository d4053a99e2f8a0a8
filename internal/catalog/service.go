package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/cache"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"golang.org/x/sync/singleflight"
)

const cacheOpTimeout = time.Second

// Service serves the storefront catalog: books and articles. Product reads go
// through the cache; admin writes invalidate it.
type Service struct {
	products repository.ProductRepository
	articles repository.ArticleRepository
	cache    cache.CatalogCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewService(products repository.ProductRepository, articles repository.ArticleRepository, c cache.CatalogCache) *Service {
	return &Service{
		products: products,
		articles: articles,
		cache:    c,
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("products:all", func() (interface{}, error) {
		cached, err := s.cache.GetProductList(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		products, err := s.products.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.SetProductList(context.Background(), products); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do("product:"+slug, func() (interface{}, error) {
		cached, err := s.cache.GetProduct(ctx, slug)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		product, err := s.products.GetProductBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}

		go func() {
			if errSet := s.cache.SetProduct(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (s *Service) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetProductByID(ctx, id)
}

func (s *Service) ListFeaturedProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListFeaturedProducts(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (string, error) {
	id, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return "", err
	}
	s.invalidate(product.Slug)
	return id, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, product *domain.Product) error {
	if err := s.products.UpdateProduct(ctx, id, product); err != nil {
		return err
	}
	s.invalidate(product.Slug)
	return nil
}

func (s *Service) SetFeatured(ctx context.Context, id string, featured bool) error {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.SetFeatured(ctx, id, featured); err != nil {
		return err
	}
	s.invalidate(product.Slug)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(product.Slug)
	return nil
}

func (s *Service) ListArticles(ctx context.Context) ([]*domain.Article, error) {
	return s.articles.ListArticles(ctx)
}

func (s *Service) GetArticleBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	return s.articles.GetArticleBySlug(ctx, slug)
}

func (s *Service) CreateArticle(ctx context.Context, article *domain.Article) (string, error) {
	return s.articles.CreateArticle(ctx, article)
}

func (s *Service) UpdateArticle(ctx context.Context, id string, article *domain.Article) error {
	return s.articles.UpdateArticle(ctx, id, article)
}

func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	return s.articles.DeleteArticle(ctx, id)
}

func (s *Service) LikeArticle(ctx context.Context, id string) error {
	return s.articles.IncrementLikes(ctx, id)
}

func (s *Service) invalidate(slug string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx, slug); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
