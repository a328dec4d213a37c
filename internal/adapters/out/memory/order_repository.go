package memory

import (
	"context"
	"slices"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"
)

var _ ports.OrderRepository = &OrderRepository{}

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	var row orderRow
	err := r.uow.write(ctx, "orders.add", func(s *Store) error {
		row = orderRow{
			id:        s.next(&s.seq.order),
			state:     aggregate.State(),
			createdAt: aggregate.CreatedAt(),
			createdBy: aggregate.CreatedBy(),
		}
		s.data.orders[row.id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.uow.write(ctx, "orders.update", func(s *Store) error {
		row, ok := s.data.orders[aggregate.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("order", aggregate.ID())
		}
		row.state = aggregate.State()
		s.data.orders[row.id] = row
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var row orderRow
	err := r.uow.read(ctx, "orders.get", func(s *Store) error {
		var ok bool
		if row, ok = s.data.orders[id]; !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// GetForUpdate is Get: inside a unit of work the whole store is already locked.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r *OrderRepository) Search(
	ctx context.Context,
	filter ports.OrderFilter,
	page pagination.Page,
) ([]*order.Order, error) {
	var rows []orderRow
	err := r.uow.read(ctx, "orders.search", func(s *Store) error {
		for _, row := range s.data.orders {
			if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, row.id) {
				continue
			}
			if len(filter.States) > 0 && !slices.Contains(filter.States, row.state) {
				continue
			}
			if filter.CreatedBy != "" && row.createdBy != filter.CreatedBy {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b orderRow) int { return compareIDs(a.id, b.id) })
	rows = pagination.Window(rows, page)

	result := make([]*order.Order, 0, len(rows))
	for _, row := range rows {
		o, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, nil
}

func (row orderRow) toDomain() (*order.Order, error) {
	return order.RestoreOrder(row.id, row.state, row.createdAt, row.createdBy)
}

func compareIDs(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
