package commands

import (
	"errors"
	"fmt"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrChangeOrderStateCommandIsNotConstructed = errors.New(
	"ChangeOrderStateCommand must be created via one of its New...Command constructors",
)

// ChangeOrderStateCommand moves an order along one entry of the transition table.
// Build it with the constructor named after the transition.
type ChangeOrderStateCommand struct { //nolint:recvcheck //using for validation
	orderID    int64
	transition order.Transition

	guard guard.ConstructorGuard
}

func NewMoveToProcessingCommand(orderID int64) (ChangeOrderStateCommand, error) {
	return newChangeOrderStateCommand(orderID, order.MoveToProcessing)
}

func NewCompleteOrderCommand(orderID int64) (ChangeOrderStateCommand, error) {
	return newChangeOrderStateCommand(orderID, order.Complete)
}

func NewCancelOrderCommand(orderID int64) (ChangeOrderStateCommand, error) {
	return newChangeOrderStateCommand(orderID, order.Cancel)
}

func NewCancelDuringProcessingCommand(orderID int64) (ChangeOrderStateCommand, error) {
	return newChangeOrderStateCommand(orderID, order.CancelDuringProcessing)
}

func newChangeOrderStateCommand(orderID int64, transition order.Transition) (ChangeOrderStateCommand, error) {
	cmd := ChangeOrderStateCommand{
		transition: transition,
		guard:      guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return ChangeOrderStateCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStateCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStateCommandIsNotConstructed)
}

func (c ChangeOrderStateCommand) OrderID() int64 {
	return c.orderID
}

func (c ChangeOrderStateCommand) Transition() order.Transition {
	return c.transition
}

func (c *ChangeOrderStateCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}
