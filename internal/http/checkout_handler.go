package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghostshadow526/foodiesandstories/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type PlaceOrderRequestDTO struct {
	checkout.CustomerInfo
	SubmissionToken string `json:"submissionToken"`
}

type PlaceOrderResponseDTO struct {
	OrderID string `json:"orderId"`
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	orderID, err := h.service.PlaceOrder(r.Context(), sessionID, req.CustomerInfo, req.SubmissionToken)
	if err != nil {
		var ve *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.As(err, &ve):
			respondValidationError(w, ve.Fields)
		default:
			// The cart is untouched; the client may retry with the same
			// submission token.
			respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not place order, please retry")
		}
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{OrderID: orderID})
}
