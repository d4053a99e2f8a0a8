package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// IsTerminal reports whether no further transition may leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the five known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo allows operators to set any status freely while an order is
// live, but forbids leaving Delivered or Cancelled.
func CanTransitionTo(from, to OrderStatus) bool {
	if !to.IsValid() {
		return false
	}
	return !from.IsTerminal()
}

// OrderItem is a frozen copy of one cart line, captured at submission time and
// decoupled from any later cart mutation.
type OrderItem struct {
	ProductID string  `json:"id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// ComplianceVerdict is the advisory output of the receipt analysis collaborator.
// It never drives a status transition on its own.
type ComplianceVerdict struct {
	IsCompliant     bool     `json:"isCompliant" bson:"is_compliant"`
	Violations      []string `json:"violations" bson:"violations"`
	ConfidenceScore float64  `json:"confidenceScore" bson:"confidence_score"`
}

// Order is immutable after creation except for Status and the one-shot
// compliance verdict.
type Order struct {
	ID              string             `json:"id" bson:"_id,omitempty"`
	SubmissionToken string             `json:"-" bson:"submission_token"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Address         string             `json:"address" bson:"address"`
	City            string             `json:"city" bson:"city"`
	Country         string             `json:"country" bson:"country"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Total           float64            `json:"total" bson:"total"`
	Status          OrderStatus        `json:"status" bson:"status"`
	ReceiptImageURL string             `json:"receiptImageUrl,omitempty" bson:"receipt_image_url,omitempty"`
	Verdict         *ComplianceVerdict `json:"verdict,omitempty" bson:"verdict,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
}
