// Package commands contains the operations that mutate orders and products.
// Every handler follows the same shape: validate the constructor-guarded command, open a
// unit of work, read and lock what it changes, apply the domain rule, append the matching
// history entry, and commit. Nothing a handler writes is visible unless Commit succeeds.
package commands

import (
	"context"

	"orders/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderItemRepoFactory interface {
		OrderItemRepository() ports.OrderItemRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW covers order creation and state transitions, which write the order,
	// its history entry and, for some transitions, an outbox record.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... apply, update, append history
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		OutboxRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderItemUoW covers adding and removing items.
	OrderItemUoW interface {
		TxManager
		OrderRepoFactory
		OrderItemRepoFactory
		HistoryRepoFactory
	}

	OrderItemUoWFactory interface {
		Create() OrderItemUoW
	}

	// HistoryUoW covers lifecycle notes, which read the order and append to the ledger.
	HistoryUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	HistoryUoWFactory interface {
		Create() HistoryUoW
	}

	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	ProductUoWFactory interface {
		Create() ProductUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)
