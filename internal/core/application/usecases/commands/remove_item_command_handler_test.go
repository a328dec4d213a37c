package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveItemCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRemoveItemCommand(3, 40)
	stored, _ := order.RestoreItem(40, 3, 7, 2, false)

	orders := new(MockOrderRepository)
	items := new(MockOrderItemRepository)
	entries := new(MockHistoryRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(3)).Return(restoredOrder(3, order.Created), nil).Once(),
		uow.On("OrderItemRepository").Return(items).Once(),
		items.On("Get", ctx, int64(40)).Return(stored, nil).Once(),
		items.On("Update", ctx, mock.MatchedBy(func(item *order.Item) bool { return item.IsDeleted() })).Return(nil).Once(),
		uow.On("HistoryRepository").Return(entries).Once(),
		entries.On("Append", ctx, mock.MatchedBy(func(item *history.Item) bool {
			return item.Payload() == history.ItemRemovedPayload{ProductID: 7}
		})).Return(nil, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewRemoveItemCommandHandler(orderItemUoWFactory{factory})
	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
	items.AssertExpectations(t)
	entries.AssertExpectations(t)
}

func TestRemoveItemCommandHandler_Handle_ItemOfAnotherOrder(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRemoveItemCommand(3, 40)
	foreign, _ := order.RestoreItem(40, 99, 7, 2, false)

	orders := new(MockOrderRepository)
	items := new(MockOrderItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(3)).Return(restoredOrder(3, order.Created), nil).Once(),
		uow.On("OrderItemRepository").Return(items).Once(),
		items.On("Get", ctx, int64(40)).Return(foreign, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewRemoveItemCommandHandler(orderItemUoWFactory{factory})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRemoveItemCommandHandler_Handle_AlreadyDeleted(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRemoveItemCommand(3, 40)
	deleted, _ := order.RestoreItem(40, 3, 7, 2, true)

	orders := new(MockOrderRepository)
	items := new(MockOrderItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(3)).Return(restoredOrder(3, order.Created), nil).Once(),
		uow.On("OrderItemRepository").Return(items).Once(),
		items.On("Get", ctx, int64(40)).Return(deleted, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewRemoveItemCommandHandler(orderItemUoWFactory{factory})
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "HistoryRepository")
}

func TestRemoveItemCommandHandler_Handle_OrderNotCreated(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewRemoveItemCommand(3, 40)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(3)).Return(restoredOrder(3, order.Processing), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewRemoveItemCommandHandler(orderItemUoWFactory{factory})
	err := h.Handle(ctx, cmd)

	var stateErr *errs.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, order.ActionRemoveItems, stateErr.Action)
	uow.AssertNotCalled(t, "OrderItemRepository")
}
