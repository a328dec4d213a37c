// Package eventhandlers maps inbound workflow events to order state machine commands.
package eventhandlers

import (
	"context"
	"errors"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/processing"
	"orders/internal/pkg/errs"
)

// StateChanger applies a transition to an order.
type StateChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStateCommand) (*order.Order, error)
}

// StepRecorder appends a lifecycle note to a processing order.
type StepRecorder interface {
	Handle(ctx context.Context, cmd commands.RecordProcessingStepCommand) (*history.Item, error)
}

// ProcessingEventHandler dispatches workflow events:
//
//	approval received   approved -> note approval_received, rejected -> cancel during processing
//	packing started     note packing_started
//	packing finished    ok -> note packing_finished, failed -> cancel during processing
//	delivery started    note delivery_started
//	delivery finished   ok -> complete, failed -> cancel during processing
//
// Events are delivered at least once. A rejected transition or a missing order means the
// event was already applied or is stale; it is logged and acknowledged, and so is an event
// that carries invalid values. Every other error is returned so the batch is redelivered.
type ProcessingEventHandler struct {
	stateChanger StateChanger
	stepRecorder StepRecorder
	logger       *slog.Logger
}

func NewProcessingEventHandler(
	stateChanger StateChanger,
	stepRecorder StepRecorder,
	logger *slog.Logger,
) *ProcessingEventHandler {
	return &ProcessingEventHandler{
		stateChanger: stateChanger,
		stepRecorder: stepRecorder,
		logger:       logger.With("component", "processing_event_handler"),
	}
}

func (h *ProcessingEventHandler) Handle(ctx context.Context, orderID int64, event processing.Event) error {
	h.logger.InfoContext(ctx, "Processing event received",
		"order_id", orderID, "kind", event.Kind, "occurred_at", event.OccurredAt, "successful", event.Successful)

	var err error
	switch event.Kind {
	case processing.KindApprovalReceived:
		if !event.Successful {
			err = h.cancel(ctx, orderID, event)
			break
		}
		err = h.note(ctx, orderID, processing.StepApprovalReceived, event)
	case processing.KindPackingStarted:
		err = h.note(ctx, orderID, processing.StepPackingStarted, event)
	case processing.KindPackingFinished:
		if !event.Successful {
			err = h.cancel(ctx, orderID, event)
			break
		}
		err = h.note(ctx, orderID, processing.StepPackingFinished, event)
	case processing.KindDeliveryStarted:
		err = h.note(ctx, orderID, processing.StepDeliveryStarted, event)
	case processing.KindDeliveryFinished:
		if !event.Successful {
			err = h.cancel(ctx, orderID, event)
			break
		}
		err = h.complete(ctx, orderID)
	default:
		h.logger.WarnContext(ctx, "Unknown processing event ignored", "order_id", orderID, "kind", event.Kind)
		return nil
	}

	switch {
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrObjectNotFound):
		h.logger.WarnContext(ctx, "Processing event already applied or stale",
			"order_id", orderID, "kind", event.Kind, "error", err)
		return nil
	case errors.Is(err, errs.ErrValidation):
		h.logger.ErrorContext(ctx, "Processing event rejected",
			"order_id", orderID, "kind", event.Kind, "error", err)
		return nil
	}
	return err
}

func (h *ProcessingEventHandler) note(
	ctx context.Context,
	orderID int64,
	step processing.Step,
	event processing.Event,
) error {
	cmd, err := commands.NewRecordProcessingStepCommand(orderID, step, event.OccurredAt)
	if err != nil {
		return err
	}
	_, err = h.stepRecorder.Handle(ctx, cmd)
	return err
}

func (h *ProcessingEventHandler) cancel(ctx context.Context, orderID int64, event processing.Event) error {
	h.logger.InfoContext(ctx, "Cancelling order during processing",
		"order_id", orderID, "kind", event.Kind, "reason", event.FailureReason)

	cmd, err := commands.NewCancelDuringProcessingCommand(orderID)
	if err != nil {
		return err
	}
	_, err = h.stateChanger.Handle(ctx, cmd)
	return err
}

func (h *ProcessingEventHandler) complete(ctx context.Context, orderID int64) error {
	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return err
	}
	if _, err = h.stateChanger.Handle(ctx, cmd); err != nil {
		return err
	}
	h.logger.InfoContext(ctx, "Order completed", "order_id", orderID)
	return nil
}
