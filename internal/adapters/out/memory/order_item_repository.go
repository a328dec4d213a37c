package memory

import (
	"context"
	"slices"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"
)

var _ ports.OrderItemRepository = &OrderItemRepository{}

type OrderItemRepository struct {
	uow *UnitOfWork
}

func (r *OrderItemRepository) Add(ctx context.Context, item *order.Item) (*order.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	var row itemRow
	err := r.uow.write(ctx, "order_items.add", func(s *Store) error {
		row = itemRow{
			id:        s.next(&s.seq.item),
			orderID:   item.OrderID(),
			productID: item.ProductID(),
			quantity:  item.Quantity(),
			deleted:   item.IsDeleted(),
		}
		s.data.items[row.id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *OrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, "order_items.update", func(s *Store) error {
		row, ok := s.data.items[item.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("orderItem", item.ID())
		}
		row.quantity = item.Quantity()
		row.deleted = item.IsDeleted()
		s.data.items[row.id] = row
		return nil
	})
}

func (r *OrderItemRepository) Get(ctx context.Context, id int64) (*order.Item, error) {
	var row itemRow
	err := r.uow.read(ctx, "order_items.get", func(s *Store) error {
		var ok bool
		if row, ok = s.data.items[id]; !ok {
			return errs.NewObjectNotFoundError("orderItem", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *OrderItemRepository) Search(
	ctx context.Context,
	filter ports.OrderItemFilter,
	page pagination.Page,
) ([]*order.Item, error) {
	var rows []itemRow
	err := r.uow.read(ctx, "order_items.search", func(s *Store) error {
		for _, row := range s.data.items {
			if len(filter.OrderIDs) > 0 && !slices.Contains(filter.OrderIDs, row.orderID) {
				continue
			}
			if len(filter.ProductIDs) > 0 && !slices.Contains(filter.ProductIDs, row.productID) {
				continue
			}
			if row.deleted && !filter.IncludeDeleted {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b itemRow) int { return compareIDs(a.id, b.id) })
	rows = pagination.Window(rows, page)

	result := make([]*order.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

func (row itemRow) toDomain() (*order.Item, error) {
	return order.RestoreItem(row.id, row.orderID, row.productID, row.quantity, row.deleted)
}
