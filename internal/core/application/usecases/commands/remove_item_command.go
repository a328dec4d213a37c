package commands

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrRemoveItemCommandIsNotConstructed = errors.New(
	"RemoveItemCommand must be created via NewRemoveItemCommand constructor",
)

// RemoveItemCommand soft-deletes an item of an order in the created state.
type RemoveItemCommand struct { //nolint:recvcheck //using for validation
	orderID     int64
	orderItemID int64

	guard guard.ConstructorGuard
}

func NewRemoveItemCommand(orderID, orderItemID int64) (RemoveItemCommand, error) {
	cmd := RemoveItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderItemID(orderItemID),
	); err != nil {
		return RemoveItemCommand{}, err
	}

	return cmd, nil
}

func (c RemoveItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveItemCommandIsNotConstructed)
}

func (c RemoveItemCommand) OrderID() int64 {
	return c.orderID
}

func (c RemoveItemCommand) OrderItemID() int64 {
	return c.orderItemID
}

func (c *RemoveItemCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *RemoveItemCommand) setOrderItemID(orderItemID int64) error {
	if orderItemID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderItemId", fmt.Errorf("%d is not greater than 0", orderItemID))
	}
	c.orderItemID = orderItemID
	return nil
}
