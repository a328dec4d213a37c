package queries

import (
	"context"

	"orders/internal/core/ports"
)

type SearchProductsQueryHandler struct {
	repo ports.ProductRepository
}

func NewSearchProductsQueryHandler(repo ports.ProductRepository) SearchProductsQueryHandler {
	return SearchProductsQueryHandler{repo: repo}
}

func (h SearchProductsQueryHandler) Handle(ctx context.Context, query SearchProductsQuery) ([]ProductResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	found, err := h.repo.Search(ctx, query.filter, query.page)
	if err != nil {
		return nil, err
	}

	products := make([]ProductResponse, 0, len(found))
	for _, p := range found {
		products = append(products, ProductResponse{
			ID:    p.ID(),
			Name:  p.Name(),
			Price: p.Price(),
		})
	}
	return products, nil
}
