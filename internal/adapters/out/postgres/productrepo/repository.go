package productrepo

import (
	"context"
	"errors"
	"strings"

	"orders/internal/core/domain/model/product"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"

	"gorm.io/gorm"
)

var _ ports.ProductRepository = &GormProductRepository{}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, p *product.Product) (*product.Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.WrapPersistence("products.add", err)
	}

	return toDomain(dto)
}

func (r *GormProductRepository) Get(ctx context.Context, id int64) (*product.Product, error) {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
		return nil, errs.WrapPersistence("products.get", err)
	}

	return toDomain(dto)
}

// Search matches NameContains case-insensitively and treats both price bounds as inclusive.
func (r *GormProductRepository) Search(
	ctx context.Context,
	filter ports.ProductFilter,
	page pagination.Page,
) ([]*product.Product, error) {
	query := r.db.WithContext(ctx).Model(&ProductDTO{})
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	if filter.NameContains != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(filter.NameContains)+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}

	var dtos []ProductDTO
	if err := query.Order("id").Offset(page.Offset()).Limit(page.Limit()).Find(&dtos).Error; err != nil {
		return nil, errs.WrapPersistence("products.search", err)
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
