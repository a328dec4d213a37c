package commands_test

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/domain/model/product"
	"orders/internal/core/ports"
	"orders/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Search(
	ctx context.Context,
	filter ports.OrderFilter,
	page pagination.Page,
) ([]*order.Order, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) Add(ctx context.Context, item *order.Item) (*order.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Item), args.Error(1)
}

func (m *MockOrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockOrderItemRepository) Get(ctx context.Context, id int64) (*order.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Item), args.Error(1)
}

func (m *MockOrderItemRepository) Search(
	ctx context.Context,
	filter ports.OrderItemFilter,
	page pagination.Page,
) ([]*order.Item, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]*order.Item), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, item *history.Item) (*history.Item, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*history.Item), args.Error(1)
}

func (m *MockHistoryRepository) FindEqual(ctx context.Context, item *history.Item) (*history.Item, bool, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*history.Item), args.Bool(1), args.Error(2)
}

func (m *MockHistoryRepository) Search(
	ctx context.Context,
	filter ports.HistoryFilter,
	page pagination.Page,
) ([]*history.Item, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]*history.Item), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Search(
	ctx context.Context,
	filter ports.ProductFilter,
	page pagination.Page,
) ([]*product.Product, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	args := m.Called(ctx, ids, sentAt)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkDeadLettered(ctx context.Context, ids []int64, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderItemRepository() ports.OrderItemRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderItemRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) uow() *MockUoW {
	args := m.Called()
	return args.Get(0).(*MockUoW)
}

type orderUoWFactory struct{ *MockUoWFactory }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow() }

type orderItemUoWFactory struct{ *MockUoWFactory }

func (f orderItemUoWFactory) Create() commands.OrderItemUoW { return f.uow() }

type historyUoWFactory struct{ *MockUoWFactory }

func (f historyUoWFactory) Create() commands.HistoryUoW { return f.uow() }

type productUoWFactory struct{ *MockUoWFactory }

func (f productUoWFactory) Create() commands.ProductUoW { return f.uow() }

type outboxUoWFactory struct{ *MockUoWFactory }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return f.uow() }

type MockLifecycleProducer struct{ mock.Mock }

func (m *MockLifecycleProducer) PublishOrderCreated(
	ctx context.Context,
	eventID uuid.UUID,
	event lifecycle.OrderCreated,
) error {
	args := m.Called(ctx, eventID, event)
	return args.Error(0)
}

func (m *MockLifecycleProducer) PublishOrderProcessingStarted(
	ctx context.Context,
	eventID uuid.UUID,
	event lifecycle.OrderProcessingStarted,
) error {
	args := m.Called(ctx, eventID, event)
	return args.Error(0)
}

func restoredOrder(id int64, state order.State) *order.Order {
	o, err := order.RestoreOrder(id, state, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "alice")
	if err != nil {
		panic(err)
	}
	return o
}
