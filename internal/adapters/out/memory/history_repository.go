package memory

import (
	"context"
	"slices"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/ports"
	"orders/internal/pkg/pagination"
)

var _ ports.HistoryRepository = &HistoryRepository{}

type HistoryRepository struct {
	uow *UnitOfWork
}

func (r *HistoryRepository) Append(ctx context.Context, item *history.Item) (*history.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	var row historyRow
	err := r.uow.write(ctx, "order_history.append", func(s *Store) error {
		row = historyRow{
			id:        s.next(&s.seq.history),
			orderID:   item.OrderID(),
			createdAt: item.CreatedAt(),
			payload:   item.Payload(),
		}
		s.data.history[row.id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history.RestoreItem(row.id, row.orderID, row.createdAt, row.payload)
}

func (r *HistoryRepository) FindEqual(ctx context.Context, item *history.Item) (*history.Item, bool, error) {
	var (
		match historyRow
		found bool
	)
	err := r.uow.read(ctx, "order_history.find_equal", func(s *Store) error {
		for _, row := range s.data.history {
			if row.orderID != item.OrderID() || !row.createdAt.Equal(item.CreatedAt()) || row.payload != item.Payload() {
				continue
			}
			if !found || row.id < match.id {
				match, found = row, true
			}
		}
		return nil
	})
	if err != nil || !found {
		return nil, false, err
	}
	stored, err := history.RestoreItem(match.id, match.orderID, match.createdAt, match.payload)
	if err != nil {
		return nil, false, err
	}
	return stored, true, nil
}

func (r *HistoryRepository) Search(
	ctx context.Context,
	filter ports.HistoryFilter,
	page pagination.Page,
) ([]*history.Item, error) {
	var rows []historyRow
	err := r.uow.read(ctx, "order_history.search", func(s *Store) error {
		for _, row := range s.data.history {
			if len(filter.OrderIDs) > 0 && !slices.Contains(filter.OrderIDs, row.orderID) {
				continue
			}
			if filter.Kind != nil && row.payload.Kind() != *filter.Kind {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b historyRow) int { return compareIDs(a.id, b.id) })
	rows = pagination.Window(rows, page)

	result := make([]*history.Item, 0, len(rows))
	for _, row := range rows {
		item, err := history.RestoreItem(row.id, row.orderID, row.createdAt, row.payload)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}
