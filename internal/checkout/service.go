package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/cart"
	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// ValidationError carries per-field failures so the caller can report them
// next to the offending inputs instead of as one generic failure.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// CustomerInfo is the shipping and payment-proof form input.
type CustomerInfo struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Address         string `json:"address" validate:"required,min=5"`
	City            string `json:"city" validate:"required,min=2"`
	Country         string `json:"country" validate:"required,min=2"`
	ReceiptImageURL string `json:"receiptImageUrl" validate:"required,url"`
}

// Publisher emits order lifecycle events. Best-effort only.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}

// Service converts a cart snapshot plus customer input into a durable order,
// then resets the cart. Creation is final once the persistence write succeeds.
type Service struct {
	cart      *cart.Store
	orders    repository.OrderRepository
	publisher Publisher
	validate  *validator.Validate
}

func NewService(cartStore *cart.Store, orders repository.OrderRepository, publisher Publisher) *Service {
	validate := validator.New()
	// Report failures under the json field names the client submitted.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		cart:      cartStore,
		orders:    orders,
		publisher: publisher,
		validate:  validate,
	}
}

// PlaceOrder builds and persists an order from the session cart.
//
// The submission token deduplicates retries: a second submit with the same
// token returns the id of the order already created for it instead of
// creating a duplicate. On persistence failure the cart is left untouched so
// the customer can retry without re-entering items.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, info CustomerInfo, submissionToken string) (string, error) {
	snapshot := s.cart.Lines(ctx, sessionID)
	if len(snapshot) == 0 {
		return "", ErrEmptyCart
	}

	if err := s.validateInfo(info); err != nil {
		return "", err
	}

	if submissionToken == "" {
		submissionToken = uuid.NewString()
	}

	order := buildOrder(snapshot, info, submissionToken)

	id, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSubmission) {
			existing, lookupErr := s.orders.GetOrderBySubmissionToken(ctx, submissionToken)
			if lookupErr != nil {
				return "", fmt.Errorf("duplicate submission lookup failed: %w", lookupErr)
			}
			log.Printf("duplicate submission token %s, returning existing order %s", submissionToken, existing.ID)
			s.cart.Clear(ctx, sessionID)
			return existing.ID, nil
		}
		return "", fmt.Errorf("failed to create order: %w", err)
	}

	s.cart.Clear(ctx, sessionID)

	if s.publisher != nil {
		if pubErr := s.publisher.PublishOrderPlaced(ctx, order); pubErr != nil {
			log.Printf("publish order placed event for %s: %v", id, pubErr)
		}
	}

	return id, nil
}

func (s *Service) validateInfo(info CustomerInfo) error {
	err := s.validate.Struct(info)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return fmt.Errorf("validate customer info: %w", err)
	}

	fields := make(map[string]string, len(invalid))
	for _, fe := range invalid {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

// buildOrder freezes the cart snapshot into an order. Items are deep-copied
// and the total is recomputed from the snapshot rather than trusted from any
// client-displayed value.
func buildOrder(snapshot []domain.CartLine, info CustomerInfo, submissionToken string) *domain.Order {
	items := make([]domain.OrderItem, len(snapshot))
	for i, l := range snapshot {
		items[i] = domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		}
	}

	return &domain.Order{
		SubmissionToken: submissionToken,
		Name:            info.Name,
		Email:           info.Email,
		Address:         info.Address,
		City:            info.City,
		Country:         info.Country,
		Items:           items,
		Total:           domain.CartTotal(snapshot),
		Status:          domain.OrderStatusPending,
		ReceiptImageURL: info.ReceiptImageURL,
		CreatedAt:       time.Now(),
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
