package services

import (
	"context"
	"time"
)

// OrderEvent is the message published after an order is committed or changes status.
type OrderEvent struct {
	Type          string    `json:"type"`
	OrderID       uint      `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	UserID        *uint     `json:"user_id,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Total         float64   `json:"total"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher sends an encoded event to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderEventHook is called in-process for every order event after it has been published.
type OrderEventHook func(ctx context.Context, event OrderEvent) error
