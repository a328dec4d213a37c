package queries

import (
	"context"

	"orders/internal/core/ports"
)

type GetOrderHistoryQueryHandler struct {
	repo ports.HistoryRepository
}

func NewGetOrderHistoryQueryHandler(repo ports.HistoryRepository) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{repo: repo}
}

// Handle returns an empty slice for an order without entries or a page past the end.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]HistoryEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	items, err := h.repo.Search(ctx, ports.HistoryFilter{
		OrderIDs: []int64{query.orderID},
		Kind:     query.kind,
	}, query.page)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntryResponse, 0, len(items))
	for _, item := range items {
		entries = append(entries, HistoryEntryResponse{
			ID:        item.ID(),
			OrderID:   item.OrderID(),
			CreatedAt: item.CreatedAt(),
			Kind:      item.Kind(),
			Payload:   item.Payload(),
		})
	}
	return entries, nil
}
