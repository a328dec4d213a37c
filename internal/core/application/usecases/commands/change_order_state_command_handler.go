package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
)

// ChangeOrderStateCommandHandler applies a guarded transition and records state_changed.
// Entering processing also queues OrderProcessingStarted in the same unit of work.
//
// Example:
//
//	cmd, _ := NewCompleteOrderCommand(orderID)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidState) {
//	    // the order was not processing
//	}
type ChangeOrderStateCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewChangeOrderStateCommandHandler(uowFactory OrderUoWFactory) ChangeOrderStateCommandHandler {
	return ChangeOrderStateCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *ChangeOrderStateCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStateCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from, err := aggregate.Apply(cmd.Transition())
	if err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry, err := history.NewItem(aggregate.ID(), now, history.StateChangedPayload{
		FromState: from.String(),
		ToState:   aggregate.State().String(),
	})
	if err != nil {
		return nil, err
	}
	if _, err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if aggregate.State() == order.Processing {
		message, err := outbox.NewMessage(
			aggregate.ID(),
			lifecycle.NewOrderProcessingStartedEnvelope(aggregate.ID(), now),
			now,
		)
		if err != nil {
			return nil, err
		}
		if err = uow.OutboxRepository().Add(ctx, message); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
