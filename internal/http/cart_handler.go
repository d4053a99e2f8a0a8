package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghostshadow526/foodiesandstories/internal/cart"
	"github.com/ghostshadow526/foodiesandstories/internal/catalog"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	store   *cart.Store
	catalog *catalog.Service
}

func NewCartHandler(store *cart.Store, catalogSvc *catalog.Service) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalogSvc,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items []domain.CartLine `json:"items"`
	Total float64           `json:"total"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	h.respondCart(w, r, sessionID)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId is required")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The line is built from the catalog record, not from client-supplied
	// name/price, so a tampered request cannot change what is charged.
	product, err := h.catalog.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not load product")
		return
	}

	h.store.Add(r.Context(), sessionID, domain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		Slug:      product.Slug,
		ImageURL:  product.ImageURL,
	})

	h.respondCartStatus(w, r, sessionID, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must not exceed 99")
		return
	}

	// Zero or negative removes the line; the store handles the floor.
	h.store.UpdateQuantity(r.Context(), sessionID, productID, req.Quantity)

	h.respondCart(w, r, sessionID)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	h.store.Remove(r.Context(), sessionID, productID)

	h.respondCart(w, r, sessionID)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	h.store.Clear(r.Context(), sessionID)

	h.respondCart(w, r, sessionID)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, r *http.Request, sessionID string) {
	h.respondCartStatus(w, r, sessionID, http.StatusOK)
}

func (h *CartHandler) respondCartStatus(w http.ResponseWriter, r *http.Request, sessionID string, status int) {
	lines := h.store.Lines(r.Context(), sessionID)
	respondJSON(w, status, CartResponseDTO{
		Items: lines,
		Total: domain.CartTotal(lines),
	})
}
