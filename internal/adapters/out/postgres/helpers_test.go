package postgres_test

import (
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
)

func newOutboxMessage(orderID int64) (*outbox.Message, error) {
	return outbox.NewMessage(orderID, lifecycle.NewOrderCreatedEnvelope(orderID, time.Now()), time.Now())
}

type orderUoWFactory struct{ f ports.UnitOfWorkFactory }

func (w orderUoWFactory) Create() commands.OrderUoW { return w.f.Create() }

type orderItemUoWFactory struct{ f ports.UnitOfWorkFactory }

func (w orderItemUoWFactory) Create() commands.OrderItemUoW { return w.f.Create() }
