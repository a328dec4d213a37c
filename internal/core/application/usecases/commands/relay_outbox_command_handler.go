package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
)

// RelayOutboxCommandHandler publishes pending outbox messages in id order and marks the
// acknowledged ones as sent.
//
// Relaying stops at the first failed delivery so per-order event order is preserved.
// Messages acknowledged before the failure are still marked sent; the failed one and
// everything after it stay pending for the next run. A commit failure after publishing
// leaves the messages pending too, which yields a duplicate delivery with the same event id.
//
// A message whose payload does not decode into a publishable lifecycle event is
// dead-lettered and the run moves on, since no retry can ever deliver it.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	producer   ports.LifecycleProducer
}

func NewRelayOutboxCommandHandler(uowFactory OutboxUoWFactory, producer ports.LifecycleProducer) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		producer:   producer,
	}
}

// Handle returns the number of messages marked sent together with the delivery
// error that stopped the run and the reasons for any dead-lettered messages.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outboxRepo := uow.OutboxRepository()
	pending, err := outboxRepo.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	sent := make([]int64, 0, len(pending))
	var (
		rejected    []int64
		rejections  []error
		deliveryErr error
	)
	for _, message := range pending {
		publish, err := h.prepare(message)
		if err != nil {
			rejected = append(rejected, message.ID())
			rejections = append(rejections, fmt.Errorf("outbox message %d dead-lettered: %w", message.ID(), err))
			continue
		}
		if deliveryErr = publish(ctx); deliveryErr != nil {
			break
		}
		sent = append(sent, message.ID())
	}

	now := time.Now().UTC()
	if len(sent) > 0 {
		if err = outboxRepo.MarkSent(ctx, sent, now); err != nil {
			return 0, err
		}
	}
	if len(rejected) > 0 {
		if err = outboxRepo.MarkDeadLettered(ctx, rejected, now); err != nil {
			return 0, err
		}
	}
	if len(sent) > 0 || len(rejected) > 0 {
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(sent), errors.Join(append(rejections, deliveryErr)...)
}

// prepare decodes message into the producer call that publishes it.
func (h *RelayOutboxCommandHandler) prepare(message *outbox.Message) (func(context.Context) error, error) {
	envelope, err := message.Envelope()
	if err != nil {
		return nil, err
	}

	switch envelope.Kind {
	case lifecycle.KindOrderCreated:
		event := envelope.OrderCreated
		if event == nil {
			return nil, errs.NewValueIsRequiredError("order_created")
		}
		return func(ctx context.Context) error {
			return h.producer.PublishOrderCreated(ctx, message.EventID(), *event)
		}, nil
	case lifecycle.KindOrderProcessingStarted:
		event := envelope.OrderProcessingStarted
		if event == nil {
			return nil, errs.NewValueIsRequiredError("order_processing_started")
		}
		return func(ctx context.Context) error {
			return h.producer.PublishOrderProcessingStarted(ctx, message.EventID(), *event)
		}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a lifecycle event", envelope.Kind))
	}
}
