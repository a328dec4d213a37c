package history

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("history Item must be created via NewItem constructor")

// Item is one ledger entry. Its id is assigned by storage on append and grows monotonically.
type Item struct {
	id        int64
	orderID   int64
	createdAt time.Time
	payload   Payload

	isConstructed bool
}

// NewItem creates an entry that has not been appended yet.
func NewItem(orderID int64, createdAt time.Time, payload Payload) (*Item, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	if payload == nil {
		return nil, errs.NewValueIsRequiredError("payload")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	return &Item{
		orderID:       orderID,
		createdAt:     createdAt.UTC(),
		payload:       payload,
		isConstructed: true,
	}, nil
}

// RestoreItem rebuilds an appended entry.
func RestoreItem(id, orderID int64, createdAt time.Time, payload Payload) (*Item, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	item, err := NewItem(orderID, createdAt, payload)
	if err != nil {
		return nil, err
	}
	item.id = id
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() int64 {
	return i.id
}

func (i *Item) OrderID() int64 {
	return i.orderID
}

func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Item) Kind() Kind {
	return i.payload.Kind()
}

func (i *Item) Payload() Payload {
	return i.payload
}
