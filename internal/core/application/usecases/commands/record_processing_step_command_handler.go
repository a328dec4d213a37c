package commands

import (
	"context"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
)

// RecordProcessingStepCommandHandler appends a lifecycle note processing -> step.
// The order state does not change; the note is rejected unless the order is processing.
// A note equal to a stored one (same order, step and occurrence time) is a redelivery:
// the stored entry is returned and nothing is written.
type RecordProcessingStepCommandHandler struct {
	uowFactory HistoryUoWFactory
}

func NewRecordProcessingStepCommandHandler(uowFactory HistoryUoWFactory) RecordProcessingStepCommandHandler {
	return RecordProcessingStepCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RecordProcessingStepCommandHandler) Handle(
	ctx context.Context,
	cmd RecordProcessingStepCommand,
) (*history.Item, error) {
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

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = aggregate.EnsureState(order.ActionRecordProcessingStep, order.Processing); err != nil {
		return nil, err
	}

	entry, err := history.NewItem(aggregate.ID(), cmd.OccurredAt(), history.StateChangedPayload{
		FromState: order.Processing.String(),
		ToState:   cmd.Step().String(),
	})
	if err != nil {
		return nil, err
	}
	historyRepo := uow.HistoryRepository()
	existing, found, err := historyRepo.FindEqual(ctx, entry)
	if err != nil {
		return nil, err
	}
	if found {
		return existing, nil
	}

	appended, err := historyRepo.Append(ctx, entry)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return appended, nil
}
