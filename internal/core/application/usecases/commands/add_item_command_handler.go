package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
)

// AddItemCommandHandler adds an item to a created order and records item_added.
// The product is not looked up; productId is stored as given.
type AddItemCommandHandler struct {
	uowFactory OrderItemUoWFactory
}

func NewAddItemCommandHandler(uowFactory OrderItemUoWFactory) AddItemCommandHandler {
	return AddItemCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h *AddItemCommandHandler) Handle(ctx context.Context, cmd AddItemCommand) (*order.Item, error) {
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
	if err = aggregate.EnsureState(order.ActionAddItems, order.Created); err != nil {
		return nil, err
	}

	item, err := order.NewItem(aggregate.ID(), cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return nil, err
	}
	persisted, err := uow.OrderItemRepository().Add(ctx, item)
	if err != nil {
		return nil, err
	}

	entry, err := history.NewItem(aggregate.ID(), time.Now().UTC(), history.ItemAddedPayload{
		ProductID: persisted.ProductID(),
		Quantity:  persisted.Quantity(),
	})
	if err != nil {
		return nil, err
	}
	if _, err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return persisted, nil
}
