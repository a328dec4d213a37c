package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/model/outbox"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func stateChanged(from, to order.State) any {
	return mock.MatchedBy(func(item *history.Item) bool {
		return item.Payload() == history.StateChangedPayload{FromState: from.String(), ToState: to.String()}
	})
}

func TestChangeOrderStateCommandHandler_Handle_MoveToProcessing(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewMoveToProcessingCommand(5)

	orders := new(MockOrderRepository)
	entries := new(MockHistoryRepository)
	messages := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(5)).Return(restoredOrder(5, order.Created), nil).Once(),
		orders.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.State() == order.Processing
		})).Return(nil).Once(),
		uow.On("HistoryRepository").Return(entries).Once(),
		entries.On("Append", ctx, stateChanged(order.Created, order.Processing)).Return(nil, nil).Once(),
		uow.On("OutboxRepository").Return(messages).Once(),
		messages.On("Add", ctx, mock.MatchedBy(func(m *outbox.Message) bool {
			return m.Kind() == lifecycle.KindOrderProcessingStarted && m.OrderID() == 5
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewChangeOrderStateCommandHandler(orderUoWFactory{factory})
	o, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Processing, o.State())
	uow.AssertExpectations(t)
	orders.AssertExpectations(t)
	entries.AssertExpectations(t)
	messages.AssertExpectations(t)
}

func TestChangeOrderStateCommandHandler_Handle_TerminalTransitions(t *testing.T) {
	tests := []struct {
		name string
		cmd  func(int64) (commands.ChangeOrderStateCommand, error)
		from order.State
		to   order.State
	}{
		{name: "complete", cmd: commands.NewCompleteOrderCommand, from: order.Processing, to: order.Completed},
		{name: "cancel created", cmd: commands.NewCancelOrderCommand, from: order.Created, to: order.Cancelled},
		{name: "cancel processing", cmd: commands.NewCancelOrderCommand, from: order.Processing, to: order.Cancelled},
		{
			name: "cancel during processing",
			cmd:  commands.NewCancelDuringProcessingCommand,
			from: order.Processing,
			to:   order.Cancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			cmd, err := tt.cmd(5)
			require.NoError(t, err)

			orders := new(MockOrderRepository)
			entries := new(MockHistoryRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(orders).Once(),
				orders.On("GetForUpdate", ctx, int64(5)).Return(restoredOrder(5, tt.from), nil).Once(),
				orders.On("Update", ctx, mock.Anything).Return(nil).Once(),
				uow.On("HistoryRepository").Return(entries).Once(),
				entries.On("Append", ctx, stateChanged(tt.from, tt.to)).Return(nil, nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockUoWFactory)
			factory.On("uow").Return(uow).Once()

			h := commands.NewChangeOrderStateCommandHandler(orderUoWFactory{factory})
			o, err := h.Handle(ctx, cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.to, o.State())
			uow.AssertNotCalled(t, "OutboxRepository")
			uow.AssertExpectations(t)
		})
	}
}

func TestChangeOrderStateCommandHandler_Handle_RejectedTransition(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCompleteOrderCommand(5)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(5)).Return(restoredOrder(5, order.Completed), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewChangeOrderStateCommandHandler(orderUoWFactory{factory})
	_, err := h.Handle(ctx, cmd)

	var stateErr *errs.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, "complete", stateErr.Action)
	assert.Equal(t, "completed", stateErr.State)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "HistoryRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestChangeOrderStateCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCancelOrderCommand(5)
	updateErr := errs.NewPersistenceError("orders.update", errors.New("connection reset"))

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, int64(5)).Return(restoredOrder(5, order.Created), nil).Once(),
		orders.On("Update", ctx, mock.Anything).Return(updateErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("uow").Return(uow).Once()

	h := commands.NewChangeOrderStateCommandHandler(orderUoWFactory{factory})
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPersistence)
	uow.AssertExpectations(t)
}
