package ports

import (
	"context"

	"orders/internal/core/domain/model/product"
	"orders/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product search. NameContains matches case-insensitively.
type ProductFilter struct {
	IDs          []int64
	NameContains string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
}

type ProductRepository interface {
	Add(ctx context.Context, p *product.Product) (*product.Product, error)
	Get(ctx context.Context, id int64) (*product.Product, error)
	Search(ctx context.Context, filter ProductFilter, page pagination.Page) ([]*product.Product, error)
}
