package orders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/ghostshadow526/foodiesandstories/internal/repository"
)

var (
	ErrInvalidTransition = errors.New("order is in a terminal status")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrNoReceipt         = errors.New("order has no receipt image")
)

// Analyzer is the receipt compliance collaborator. Its verdict is advisory
// and never drives a status transition.
type Analyzer interface {
	Analyze(ctx context.Context, receiptImageURL string, expectedAmount float64, paymentMethod, expectedAccountNumber string) (*domain.ComplianceVerdict, error)
}

// Publisher emits order lifecycle events. Best-effort only.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}

// PaymentPolicy describes the bank-transfer facts a receipt is checked against.
type PaymentPolicy struct {
	Method        string
	AccountNumber string
}

// Service is the operator back office for placed orders: listing, status
// transitions, deletion, and the on-demand compliance check.
type Service struct {
	repo      repository.OrderRepository
	analyzer  Analyzer
	publisher Publisher
	policy    PaymentPolicy
}

func NewService(repo repository.OrderRepository, analyzer Analyzer, publisher Publisher, policy PaymentPolicy) *Service {
	return &Service{
		repo:      repo,
		analyzer:  analyzer,
		publisher: publisher,
		policy:    policy,
	}
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

// ChangeStatus overwrites the order status. Operators may move freely between
// live statuses, but Delivered and Cancelled are terminal.
func (s *Service) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if !status.IsValid() {
		return ErrUnknownStatus
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}

	if order.Status == status {
		return nil
	}
	if !domain.CanTransitionTo(order.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return err
	}

	if s.publisher != nil {
		previous := order.Status
		order.Status = status
		if pubErr := s.publisher.PublishStatusChanged(ctx, order, previous); pubErr != nil {
			log.Printf("publish status change for order %s: %v", id, pubErr)
		}
	}
	return nil
}

// DeleteOrder removes the order entirely. Allowed from any status and
// irreversible; it is a removal, not a transition.
func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	return s.repo.DeleteOrder(ctx, id)
}

// CheckReceiptCompliance runs the advisory analysis against the order's
// receipt and stores the verdict on the order. The order status is never
// touched here; the operator reads the verdict as a decision aid.
func (s *Service) CheckReceiptCompliance(ctx context.Context, id string) (*domain.ComplianceVerdict, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Verdict != nil {
		return order.Verdict, nil
	}
	if order.ReceiptImageURL == "" {
		return nil, ErrNoReceipt
	}

	verdict, err := s.analyzer.Analyze(ctx, order.ReceiptImageURL, order.Total, s.policy.Method, s.policy.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("compliance analysis failed: %w", err)
	}

	if err := s.repo.SetVerdict(ctx, id, *verdict); err != nil {
		if errors.Is(err, repository.ErrVerdictAlreadySet) {
			// Two operators raced; the stored verdict wins.
			stored, getErr := s.repo.GetOrderByID(ctx, id)
			if getErr == nil && stored.Verdict != nil {
				return stored.Verdict, nil
			}
		}
		return nil, err
	}
	return verdict, nil
}
