package commands

import (
	"context"
	"fmt"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
)

// RemoveItemCommandHandler soft-deletes an item and records item_removed.
//
// Checks run in this order: the order must be created, the item must exist and belong
// to the order, and the item must not be deleted already.
type RemoveItemCommandHandler struct {
	uowFactory OrderItemUoWFactory
}

func NewRemoveItemCommandHandler(uowFactory OrderItemUoWFactory) RemoveItemCommandHandler {
	return RemoveItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *RemoveItemCommandHandler) Handle(ctx context.Context, cmd RemoveItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.EnsureState(order.ActionRemoveItems, order.Created); err != nil {
		return err
	}

	itemRepo := uow.OrderItemRepository()
	item, err := itemRepo.Get(ctx, cmd.OrderItemID())
	if err != nil {
		return err
	}
	if !item.BelongsTo(aggregate.ID()) {
		return errs.NewObjectNotFoundErrorWithCause(
			"orderItem",
			cmd.OrderItemID(),
			fmt.Errorf("item does not belong to order %d", aggregate.ID()),
		)
	}

	if err = item.Remove(); err != nil {
		return err
	}
	if err = itemRepo.Update(ctx, item); err != nil {
		return err
	}

	entry, err := history.NewItem(aggregate.ID(), time.Now().UTC(), history.ItemRemovedPayload{
		ProductID: item.ProductID(),
	})
	if err != nil {
		return err
	}
	if _, err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
