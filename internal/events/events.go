// Package events publishes order lifecycle events for downstream consumers
// (notifications, analytics). Publishing is best effort: failures are logged
// by callers and never fail the transition that triggered them.
package events

import "context"

const (
	TopicOrderCreated   = "orders.created"
	TopicOrderPaid      = "orders.paid"
	TopicOrderDelivered = "orders.delivered"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, key string, event any) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }
