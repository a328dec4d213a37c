package order

import (
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or RestoreItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one product line of an order. Items are never physically removed.
type Item struct {
	id        int64
	orderID   int64
	productID int64
	quantity  int
	deleted   bool

	isConstructed bool
}

// NewItem creates an active item for orderID.
func NewItem(orderID, productID int64, quantity int) (*Item, error) {
	item := &Item{isConstructed: true}

	if err := errors.Join(
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreItem rebuilds a persisted item.
func RestoreItem(id, orderID, productID int64, quantity int, deleted bool) (*Item, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	item, err := NewItem(orderID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.id = id
	item.deleted = deleted
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

func (i *Item) ProductID() int64 {
	return i.productID
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) IsDeleted() bool {
	return i.deleted
}

// BelongsTo reports whether the item is a line of orderID.
func (i *Item) BelongsTo(orderID int64) bool {
	return i.orderID == orderID
}

// Remove soft-deletes the item. Removing twice is rejected.
func (i *Item) Remove() error {
	if i.deleted {
		return errs.NewInvalidStateError("remove item", "deleted", "active")
	}
	i.deleted = true
	return nil
}

func (i *Item) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	i.orderID = orderID
	return nil
}

func (i *Item) setProductID(productID int64) error {
	if productID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("productId", fmt.Errorf("%d is not greater than 0", productID))
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
