package service

import "context"

// PurchaseEvent is published after a checkout commits. The worker consumes it
// to deliver a push notification; losing an event never affects the purchase.
type PurchaseEvent struct {
	PurchaseID     int64   `json:"purchase_id"`
	UserID         int64   `json:"user_id"`
	Total          float64 `json:"total"`
	CashbackEarned float64 `json:"cashback_earned"`
	RequestID      string  `json:"request_id,omitempty"`
}

// EventPublisher defines the interface for publishing purchase events.
type EventPublisher interface {
	// PublishPurchaseEvent publishes an event to the configured transport.
	PublishPurchaseEvent(ctx context.Context, event *PurchaseEvent) error

	// Close releases the publisher's resources.
	Close() error
}
