package queries

import (
	"context"

	"orders/internal/core/ports"
)

type SearchOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewSearchOrdersQueryHandler(repo ports.OrderRepository) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{repo: repo}
}

func (h SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.repo.Search(ctx, query.filter, query.page)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(found))
	for _, o := range found {
		orders = append(orders, OrderResponse{
			ID:        o.ID(),
			State:     o.State().String(),
			CreatedAt: o.CreatedAt(),
			CreatedBy: o.CreatedBy(),
		})
	}
	return orders, nil
}
