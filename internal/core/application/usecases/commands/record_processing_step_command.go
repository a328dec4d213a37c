package commands

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/processing"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

var ErrRecordProcessingStepCommandIsNotConstructed = errors.New(
	"RecordProcessingStepCommand must be created via NewRecordProcessingStepCommand constructor",
)

// RecordProcessingStepCommand notes a workflow milestone of a processing order at the
// time the workflow reported it.
type RecordProcessingStepCommand struct { //nolint:recvcheck //using for validation
	orderID    int64
	step       processing.Step
	occurredAt time.Time

	guard guard.ConstructorGuard
}

func NewRecordProcessingStepCommand(
	orderID int64,
	step processing.Step,
	occurredAt time.Time,
) (RecordProcessingStepCommand, error) {
	cmd := RecordProcessingStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStep(step),
		cmd.setOccurredAt(occurredAt),
	); err != nil {
		return RecordProcessingStepCommand{}, err
	}

	return cmd, nil
}

func (c RecordProcessingStepCommand) Validate() error {
	return c.guard.Validate(ErrRecordProcessingStepCommandIsNotConstructed)
}

func (c RecordProcessingStepCommand) OrderID() int64 {
	return c.orderID
}

func (c RecordProcessingStepCommand) Step() processing.Step {
	return c.step
}

func (c RecordProcessingStepCommand) OccurredAt() time.Time {
	return c.occurredAt
}

func (c *RecordProcessingStepCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *RecordProcessingStepCommand) setStep(step processing.Step) error {
	parsed, err := processing.ParseStep(string(step))
	if err != nil {
		return err
	}
	c.step = parsed
	return nil
}

func (c *RecordProcessingStepCommand) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	c.occurredAt = occurredAt.UTC()
	return nil
}
