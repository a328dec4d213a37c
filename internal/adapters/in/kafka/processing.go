package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/domain/model/processing"
	"orders/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// OrderKey is the key of every processing message.
type OrderKey struct {
	OrderID int64 `json:"order_id"`
}

type processingValue struct {
	Kind          string    `json:"kind"`
	OccurredAt    time.Time `json:"occurred_at"`
	Successful    bool      `json:"successful"`
	FailureReason string    `json:"failure_reason"`
}

// DecodeProcessingMessage decodes a processing topic message. Unknown event kinds are
// decoded as is and left to the event handler.
func DecodeProcessingMessage(msg kafka.Message) (OrderKey, processing.Event, error) {
	var key OrderKey
	if err := json.Unmarshal(msg.Key, &key); err != nil {
		return OrderKey{}, processing.Event{}, errs.NewValueIsInvalidErrorWithCause("key", err)
	}
	if key.OrderID <= 0 {
		return OrderKey{}, processing.Event{}, errs.NewValueIsInvalidErrorWithCause("order_id",
			fmt.Errorf("%d is not greater than 0", key.OrderID))
	}

	var value processingValue
	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return OrderKey{}, processing.Event{}, errs.NewValueIsInvalidErrorWithCause("value", err)
	}
	if value.Kind == "" {
		return OrderKey{}, processing.Event{}, errs.NewValueIsRequiredError("kind")
	}

	return key, processing.Event{
		Kind:          processing.Kind(value.Kind),
		OccurredAt:    value.OccurredAt.UTC(),
		Successful:    value.Successful,
		FailureReason: value.FailureReason,
	}, nil
}

// EventHandler applies one processing event to an order.
type EventHandler interface {
	Handle(ctx context.Context, orderID int64, event processing.Event) error
}

// ProcessingBatchHandler applies a batch event by event and stops at the first error.
type ProcessingBatchHandler struct {
	handler EventHandler
}

func NewProcessingBatchHandler(handler EventHandler) *ProcessingBatchHandler {
	return &ProcessingBatchHandler{handler: handler}
}

func (h *ProcessingBatchHandler) HandleBatch(ctx context.Context, batch []Message[OrderKey, processing.Event]) error {
	for _, m := range batch {
		if err := h.handler.Handle(ctx, m.Key.OrderID, m.Value); err != nil {
			return fmt.Errorf("order %d at partition %d offset %d: %w", m.Key.OrderID, m.Partition, m.Offset, err)
		}
	}
	return nil
}
