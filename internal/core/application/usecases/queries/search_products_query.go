package queries

import (
	"errors"
	"fmt"
	"strings"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
	"orders/internal/pkg/pagination"

	"github.com/shopspring/decimal"
)

var ErrSearchProductsQueryIsNotConstructed = errors.New(
	"SearchProductsQuery must be created via NewSearchProductsQuery constructor",
)

// SearchProductsQuery lists products ordered by id.
type SearchProductsQuery struct {
	filter ports.ProductFilter
	page   pagination.Page

	guard guard.ConstructorGuard
}

// NewSearchProductsQuery rejects a price range whose minimum exceeds its maximum.
func NewSearchProductsQuery(
	ids []int64,
	nameContains string,
	minPrice, maxPrice *decimal.Decimal,
	pageNumber, pageSize int,
) (SearchProductsQuery, error) {
	page, err := pagination.NewPage(pageNumber, pageSize)
	if err != nil {
		return SearchProductsQuery{}, err
	}
	if minPrice != nil && maxPrice != nil && minPrice.GreaterThan(*maxPrice) {
		return SearchProductsQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"minPrice", fmt.Errorf("%s is greater than maxPrice %s", minPrice, maxPrice))
	}

	return SearchProductsQuery{
		filter: ports.ProductFilter{
			IDs:          ids,
			NameContains: strings.TrimSpace(nameContains),
			MinPrice:     minPrice,
			MaxPrice:     maxPrice,
		},
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q SearchProductsQuery) Validate() error {
	return q.guard.Validate(ErrSearchProductsQueryIsNotConstructed)
}

type ProductResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
