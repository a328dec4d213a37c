// Package ports defines the persistence contracts of the order lifecycle engine.
// Every operation takes a context and runs inside the caller's UnitOfWork when one
// has been started. Failures of the underlying store surface as errs.PersistenceError;
// a missing entity surfaces as errs.ObjectNotFoundError.
package ports

import (
	"context"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/pagination"
)

// OrderFilter narrows an order search. Empty slices and zero values match everything.
type OrderFilter struct {
	IDs       []int64
	States    []order.State
	CreatedBy string
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add stores a new order and returns the persisted copy carrying the assigned id.
	Add(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Update persists the state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order by id and locks it until the unit of work ends,
	// so concurrent commands on the same order serialize.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Search returns matching orders ordered by id ascending.
	Search(ctx context.Context, filter OrderFilter, page pagination.Page) ([]*order.Order, error)
}

// OrderItemFilter narrows an item search. Deleted items are excluded unless IncludeDeleted is set.
type OrderItemFilter struct {
	OrderIDs       []int64
	ProductIDs     []int64
	IncludeDeleted bool
}

// OrderItemRepository defines the persistence contract for order items.
type OrderItemRepository interface {
	Add(ctx context.Context, item *order.Item) (*order.Item, error)
	Update(ctx context.Context, item *order.Item) error
	Get(ctx context.Context, id int64) (*order.Item, error)
	Search(ctx context.Context, filter OrderItemFilter, page pagination.Page) ([]*order.Item, error)
}
