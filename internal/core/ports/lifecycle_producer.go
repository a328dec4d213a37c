package ports

import (
	"context"

	"orders/internal/core/domain/model/lifecycle"

	"github.com/google/uuid"
)

// LifecycleProducer announces order lifecycle events to downstream services. Both calls
// block until the broker acknowledges the message; a failed acknowledgment surfaces as
// errs.DeliveryError. eventID travels with the message so consumers can deduplicate.
type LifecycleProducer interface {
	PublishOrderCreated(ctx context.Context, eventID uuid.UUID, event lifecycle.OrderCreated) error
	PublishOrderProcessingStarted(ctx context.Context, eventID uuid.UUID, event lifecycle.OrderProcessingStarted) error
}
