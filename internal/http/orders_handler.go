package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/orders"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/go-chi/chi/v5"
)

type OrdersHandler struct {
	service *orders.Service
}

func NewOrdersHandler(service *orders.Service) *OrdersHandler {
	return &OrdersHandler{service: service}
}

type ChangeStatusRequestDTO struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch orders")
		return
	}
	if list == nil {
		list = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not fetch order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ChangeStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	err := h.service.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "not_found", "order not found")
		case errors.Is(err, orders.ErrUnknownStatus):
			respondError(w, http.StatusBadRequest, "invalid_status", "unknown order status")
		case errors.Is(err, orders.ErrInvalidTransition):
			respondError(w, http.StatusConflict, "terminal_status", err.Error())
		default:
			respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not update order status")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": string(req.Status)})
}

func (h *OrdersHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not delete order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) CheckCompliance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	verdict, err := h.service.CheckReceiptCompliance(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "not_found", "order not found")
		case errors.Is(err, orders.ErrNoReceipt):
			respondError(w, http.StatusBadRequest, "no_receipt", "order has no receipt image")
		default:
			respondError(w, http.StatusServiceUnavailable, "service_unavailable", "compliance check failed, please retry")
		}
		return
	}

	respondJSON(w, http.StatusOK, verdict)
}
