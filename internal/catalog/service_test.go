package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/cache"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	m        sync.RWMutex
	products map[string]*domain.Product
	err      error
	listens  int
}

func newMockProductRepo(products ...*domain.Product) *mockProductRepo {
	r := &mockProductRepo{products: make(map[string]*domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *mockProductRepo) ListProducts(context.Context) ([]*domain.Product, error) {
	r.m.Lock()
	defer r.m.Unlock()
	r.listens++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *mockProductRepo) ListFeaturedProducts(context.Context) ([]*domain.Product, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	var out []*domain.Product
	for _, p := range r.products {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *mockProductRepo) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (r *mockProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	r.m.RLock()
	defer r.m.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (r *mockProductRepo) CreateProduct(_ context.Context, p *domain.Product) (string, error) {
	r.m.Lock()
	defer r.m.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("p-%d", len(r.products)+1)
	}
	r.products[p.ID] = p
	return p.ID, nil
}

func (r *mockProductRepo) UpdateProduct(_ context.Context, id string, p *domain.Product) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	p.ID = id
	r.products[id] = p
	return nil
}

func (r *mockProductRepo) SetFeatured(_ context.Context, id string, featured bool) error {
	r.m.Lock()
	defer r.m.Unlock()
	p, ok := r.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.IsFeatured = featured
	return nil
}

func (r *mockProductRepo) DeleteProduct(_ context.Context, id string) error {
	r.m.Lock()
	defer r.m.Unlock()
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type mockCatalogCache struct {
	m        sync.RWMutex
	products map[string]*domain.Product
	list     []*domain.Product
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{products: make(map[string]*domain.Product)}
}

func (c *mockCatalogCache) GetProduct(_ context.Context, slug string) (*domain.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	p, ok := c.products[slug]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (c *mockCatalogCache) SetProduct(_ context.Context, p *domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.products[p.Slug] = p
	return nil
}

func (c *mockCatalogCache) GetProductList(context.Context) ([]*domain.Product, error) {
	c.m.RLock()
	defer c.m.RUnlock()
	if c.list == nil {
		return nil, cache.ErrCacheMiss
	}
	return c.list, nil
}

func (c *mockCatalogCache) SetProductList(_ context.Context, products []*domain.Product) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.list = products
	return nil
}

func (c *mockCatalogCache) Invalidate(_ context.Context, slug string) error {
	c.m.Lock()
	defer c.m.Unlock()
	c.list = nil
	delete(c.products, slug)
	return nil
}

func (c *mockCatalogCache) cachedList() []*domain.Product {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.list
}

func (c *mockCatalogCache) cachedProduct(slug string) *domain.Product {
	c.m.RLock()
	defer c.m.RUnlock()
	return c.products[slug]
}

type stubArticleRepo struct{}

func (stubArticleRepo) ListArticles(context.Context) ([]*domain.Article, error) { return nil, nil }
func (stubArticleRepo) GetArticleBySlug(context.Context, string) (*domain.Article, error) {
	return nil, repository.ErrArticleNotFound
}
func (stubArticleRepo) CreateArticle(context.Context, *domain.Article) (string, error) {
	return "a-1", nil
}
func (stubArticleRepo) UpdateArticle(context.Context, string, *domain.Article) error { return nil }
func (stubArticleRepo) DeleteArticle(context.Context, string) error                  { return nil }
func (stubArticleRepo) IncrementLikes(context.Context, string) error                 { return nil }

func product(id, slug string) *domain.Product {
	return &domain.Product{ID: id, Slug: slug, Name: "Book " + slug, Price: 3000}
}

func TestGetProductBySlug_CacheMissFillsCache(t *testing.T) {
	repo := newMockProductRepo(product("p1", "things-fall-apart"))
	c := newMockCatalogCache()
	sut := NewService(repo, stubArticleRepo{}, c)

	got, err := sut.GetProductBySlug(context.Background(), "things-fall-apart")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	require.Eventually(t, func() bool {
		return c.cachedProduct("things-fall-apart") != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "product was not set in cache")
}

func TestGetProductBySlug_CacheHitSkipsRepo(t *testing.T) {
	repo := newMockProductRepo()
	repo.err = fmt.Errorf("repo must not be called")
	c := newMockCatalogCache()
	c.products["cached"] = product("p9", "cached")
	sut := NewService(repo, stubArticleRepo{}, c)

	got, err := sut.GetProductBySlug(context.Background(), "cached")
	require.NoError(t, err)
	assert.Equal(t, "p9", got.ID)
}

func TestGetProductBySlug_NotFound(t *testing.T) {
	sut := NewService(newMockProductRepo(), stubArticleRepo{}, newMockCatalogCache())

	_, err := sut.GetProductBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestListProducts_FillsListCache(t *testing.T) {
	repo := newMockProductRepo(product("p1", "a"), product("p2", "b"))
	c := newMockCatalogCache()
	sut := NewService(repo, stubArticleRepo{}, c)

	got, err := sut.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.Eventually(t, func() bool {
		return c.cachedList() != nil
	}, 100*time.Millisecond, 10*time.Millisecond, "list was not set in cache")
}

func TestCreateProduct_InvalidatesListCache(t *testing.T) {
	repo := newMockProductRepo()
	c := newMockCatalogCache()
	c.list = []*domain.Product{}
	sut := NewService(repo, stubArticleRepo{}, c)

	_, err := sut.CreateProduct(context.Background(), product("", "new-book"))
	require.NoError(t, err)
	assert.Nil(t, c.cachedList())
}

func TestSetFeatured_InvalidatesProductCache(t *testing.T) {
	repo := newMockProductRepo(product("p1", "a"))
	c := newMockCatalogCache()
	c.products["a"] = product("p1", "a")
	sut := NewService(repo, stubArticleRepo{}, c)

	require.NoError(t, sut.SetFeatured(context.Background(), "p1", true))

	assert.Nil(t, c.cachedProduct("a"))
	featured, err := sut.ListFeaturedProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].IsFeatured)
}

func TestDeleteProduct_Missing(t *testing.T) {
	sut := NewService(newMockProductRepo(), stubArticleRepo{}, newMockCatalogCache())

	err := sut.DeleteProduct(context.Background(), "nope")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}
