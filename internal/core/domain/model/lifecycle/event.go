// Package lifecycle holds the events the engine announces to downstream services.
package lifecycle

import "time"

// Kind names an outbound lifecycle event.
type Kind string

const (
	KindOrderCreated           Kind = "order_created"
	KindOrderProcessingStarted Kind = "order_processing_started"
)

func (k Kind) String() string {
	return string(k)
}

// OrderCreated is announced once an order has been persisted.
type OrderCreated struct {
	OrderID   int64     `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderProcessingStarted is announced when an order moves to processing.
type OrderProcessingStarted struct {
	OrderID   int64     `json:"order_id"`
	StartedAt time.Time `json:"started_at"`
}

// Key is the partitioning key of every lifecycle message.
type Key struct {
	OrderID int64 `json:"order_id"`
}

// Envelope is the message value. Exactly one of the event fields is set, matching Kind.
type Envelope struct {
	Kind                   Kind                    `json:"kind"`
	OrderCreated           *OrderCreated           `json:"order_created,omitempty"`
	OrderProcessingStarted *OrderProcessingStarted `json:"order_processing_started,omitempty"`
}

func NewOrderCreatedEnvelope(orderID int64, createdAt time.Time) Envelope {
	return Envelope{
		Kind:         KindOrderCreated,
		OrderCreated: &OrderCreated{OrderID: orderID, CreatedAt: createdAt.UTC()},
	}
}

func NewOrderProcessingStartedEnvelope(orderID int64, startedAt time.Time) Envelope {
	return Envelope{
		Kind:                   KindOrderProcessingStarted,
		OrderProcessingStarted: &OrderProcessingStarted{OrderID: orderID, StartedAt: startedAt.UTC()},
	}
}
