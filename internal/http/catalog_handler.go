package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghostshadow526/foodiesandstories/internal/catalog"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	service *catalog.Service
}

func NewCatalogHandler(service *catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type SetFeaturedRequestDTO struct {
	IsFeatured bool `json:"isFeatured"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch products")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) ListFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListFeaturedProducts(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch products")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if product.Name == "" || product.Slug == "" || product.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_product", "name and slug are required, price must be non-negative")
		return
	}

	id, err := h.service.CreateProduct(r.Context(), &product)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not create product")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.UpdateProduct(r.Context(), id, &product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not update product")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *CatalogHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SetFeaturedRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.SetFeatured(r.Context(), id, req.IsFeatured); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not update featured flag")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"isFeatured": req.IsFeatured})
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListArticles(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch articles")
		return
	}
	if articles == nil {
		articles = []*domain.Article{}
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *CatalogHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.service.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "article not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch article")
		return
	}
	respondJSON(w, http.StatusOK, article)
}

func (h *CatalogHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if article.Title == "" || article.Slug == "" {
		respondError(w, http.StatusBadRequest, "invalid_article", "title and slug are required")
		return
	}

	id, err := h.service.CreateArticle(r.Context(), &article)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not create article")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CatalogHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var article domain.Article
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.service.UpdateArticle(r.Context(), id, &article); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "article not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not update article")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *CatalogHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "article not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not delete article")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) LikeArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.LikeArticle(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "article not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not like article")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
