// Package kafka publishes order lifecycle events to the broker.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventIDHeader carries the outbox event id of every published message.
const EventIDHeader = "event-id"

var _ ports.LifecycleProducer = &LifecycleProducer{}

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// LifecycleProducer writes lifecycle envelopes keyed by order id. Each call blocks until
// the writer reports the broker acknowledgment.
type LifecycleProducer struct {
	writer  MessageWriter
	topic   string
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewLifecycleProducer(
	writer MessageWriter,
	topic string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *LifecycleProducer {
	return &LifecycleProducer{
		writer:  writer,
		topic:   topic,
		metrics: m,
		logger:  logger.With("component", "lifecycle_producer"),
	}
}

func (p *LifecycleProducer) PublishOrderCreated(
	ctx context.Context,
	eventID uuid.UUID,
	event lifecycle.OrderCreated,
) error {
	return p.publish(ctx, eventID, event.OrderID, lifecycle.Envelope{
		Kind:         lifecycle.KindOrderCreated,
		OrderCreated: &event,
	})
}

func (p *LifecycleProducer) PublishOrderProcessingStarted(
	ctx context.Context,
	eventID uuid.UUID,
	event lifecycle.OrderProcessingStarted,
) error {
	return p.publish(ctx, eventID, event.OrderID, lifecycle.Envelope{
		Kind:                   lifecycle.KindOrderProcessingStarted,
		OrderProcessingStarted: &event,
	})
}

func (p *LifecycleProducer) publish(
	ctx context.Context,
	eventID uuid.UUID,
	orderID int64,
	envelope lifecycle.Envelope,
) error {
	key, err := json.Marshal(lifecycle.Key{OrderID: orderID})
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("key", err)
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("value", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     key,
		Value:   value,
		Headers: []kafka.Header{{Key: EventIDHeader, Value: []byte(eventID.String())}},
		Time:    time.Now().UTC(),
	})
	p.metrics.ObserveDelivery(envelope.Kind.String(), err)
	if err != nil {
		p.logger.ErrorContext(ctx, "Lifecycle event delivery failed",
			"order_id", orderID, "kind", envelope.Kind, "event_id", eventID, "error", err)
		return errs.NewDeliveryError(p.topic, err)
	}

	p.logger.InfoContext(ctx, "Lifecycle event published",
		"order_id", orderID, "kind", envelope.Kind, "event_id", eventID)
	return nil
}
