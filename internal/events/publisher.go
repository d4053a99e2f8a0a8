package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/ghostshadow526/foodiesandstories/internal/domain"
	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "order-events"

// KafkaPublisher emits order lifecycle events for downstream consumers
// (notification mails, reporting). Publishing is best-effort: the order write
// has already succeeded and is never rolled back over a lost event.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

type orderPlacedEvent struct {
	OrderID   string             `json:"order_id"`
	Email     string             `json:"email"`
	Items     []domain.OrderItem `json:"items"`
	Total     float64            `json:"total"`
	Status    domain.OrderStatus `json:"status"`
	PlacedAt  time.Time          `json:"placed_at"`
	EmittedAt time.Time          `json:"emitted_at"`
}

type statusChangedEvent struct {
	OrderID   string             `json:"order_id"`
	Email     string             `json:"email"`
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
	ChangedAt time.Time          `json:"changed_at"`
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	event := orderPlacedEvent{
		OrderID:   order.ID,
		Email:     order.Email,
		Items:     order.Items,
		Total:     order.Total,
		Status:    order.Status,
		PlacedAt:  order.CreatedAt,
		EmittedAt: time.Now(),
	}
	return p.publish(ctx, order.ID, "order-placed", event)
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error {
	event := statusChangedEvent{
		OrderID:   order.ID,
		Email:     order.Email,
		OldStatus: previous,
		NewStatus: order.Status,
		ChangedAt: time.Now(),
	}
	return p.publish(ctx, order.ID, "order-status-changed", event)
}

func (p *KafkaPublisher) publish(ctx context.Context, orderID, eventType string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(orderID), // order id for per-order ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}
