package commands

import (
	"errors"
	"strings"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order on behalf of createdBy.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("alice")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	createdBy string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand rejects a blank createdBy.
func NewCreateOrderCommand(createdBy string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCreatedBy(createdBy); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CreatedBy() string {
	return c.createdBy
}

func (c *CreateOrderCommand) setCreatedBy(createdBy string) error {
	trimmed := strings.TrimSpace(createdBy)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("createdBy")
	}

	c.createdBy = trimmed
	return nil
}
