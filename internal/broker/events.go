package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"printo/internal/model"
)

// Event types carried on the order topic.
const (
	EventTypeOrderPlaced    = "ORDER_PLACED"
	EventTypeOrderPaid      = "ORDER_PAID"
	EventTypeOrderCancelled = "ORDER_CANCELLED"
	EventTypeOrderStatus    = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains fields common to all events.
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderEvent is published for every order lifecycle change. Items carry the
// commission snapshot so consumers never need to re-read the order row.
type OrderEvent struct {
	BaseEvent
	OrderID     string            `json:"order_id"`
	UserID      string            `json:"user_id"`
	UserEmail   string            `json:"user_email,omitempty"`
	Status      string            `json:"status"`
	TotalAmount string            `json:"total_amount"`
	Items       []model.OrderItem `json:"items,omitempty"`
}

// EventPublisher marshals and publishes order events.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher wraps a producer.
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderEvent publishes one event keyed by order id.
func (p *EventPublisher) PublishOrderEvent(ctx context.Context, eventType string, order *model.Order, userEmail string) error {
	ev := OrderEvent{
		BaseEvent: BaseEvent{
			EventID:   uuid.NewString(),
			EventType: eventType,
			Timestamp: time.Now().UTC(),
		},
		OrderID:     order.ID,
		UserID:      order.UserID,
		UserEmail:   userEmail,
		Status:      order.Status,
		TotalAmount: order.TotalAmount.StringFixed(2),
		Items:       order.Items,
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.producer.Publish(ctx, order.ID, raw)
}
