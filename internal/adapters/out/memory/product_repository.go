package memory

import (
	"context"
	"slices"
	"strings"

	"orders/internal/core/domain/model/product"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"
)

var _ ports.ProductRepository = &ProductRepository{}

type ProductRepository struct {
	uow *UnitOfWork
}

func (r *ProductRepository) Add(ctx context.Context, p *product.Product) (*product.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var row productRow
	err := r.uow.write(ctx, "products.add", func(s *Store) error {
		row = productRow{id: s.next(&s.seq.product), name: p.Name(), price: p.Price()}
		s.data.products[row.id] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(row.id, row.name, row.price)
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	var row productRow
	err := r.uow.read(ctx, "products.get", func(s *Store) error {
		var ok bool
		if row, ok = s.data.products[id]; !ok {
			return errs.NewObjectNotFoundError("product", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(row.id, row.name, row.price)
}

func (r *ProductRepository) Search(
	ctx context.Context,
	filter ports.ProductFilter,
	page pagination.Page,
) ([]*product.Product, error) {
	needle := strings.ToLower(filter.NameContains)
	var rows []productRow
	err := r.uow.read(ctx, "products.search", func(s *Store) error {
		for _, row := range s.data.products {
			if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, row.id) {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(row.name), needle) {
				continue
			}
			if filter.MinPrice != nil && row.price.LessThan(*filter.MinPrice) {
				continue
			}
			if filter.MaxPrice != nil && row.price.GreaterThan(*filter.MaxPrice) {
				continue
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(rows, func(a, b productRow) int { return compareIDs(a.id, b.id) })
	rows = pagination.Window(rows, page)

	result := make([]*product.Product, 0, len(rows))
	for _, row := range rows {
		p, err := product.RestoreProduct(row.id, row.name, row.price)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
