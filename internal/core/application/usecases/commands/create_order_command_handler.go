package commands

import (
	"context"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
)

// CreateOrderCommandHandler persists a new order in the created state together with its
// created history entry and the OrderCreated outbox record.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the persisted order carrying its assigned id.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(cmd.CreatedBy(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	persisted, err := uow.OrderRepository().Add(ctx, aggregate)
	if err != nil {
		return nil, err
	}

	entry, err := history.NewItem(persisted.ID(), now, history.CreatedPayload{CreatedBy: persisted.CreatedBy()})
	if err != nil {
		return nil, err
	}
	if _, err = uow.HistoryRepository().Append(ctx, entry); err != nil {
		return nil, err
	}

	message, err := outbox.NewMessage(
		persisted.ID(),
		lifecycle.NewOrderCreatedEnvelope(persisted.ID(), persisted.CreatedAt()),
		now,
	)
	if err != nil {
		return nil, err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return persisted, nil
}
