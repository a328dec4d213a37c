package orderrepo

import (
	"context"
	"errors"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"

	"gorm.io/gorm"
)

var _ ports.OrderItemRepository = &GormOrderItemRepository{}

// GormOrderItemRepository implements ports.OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db *gorm.DB
}

func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

func (r *GormOrderItemRepository) Add(ctx context.Context, item *order.Item) (*order.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	dto := itemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.WrapPersistence("order_items.add", err)
	}

	return itemToDomain(dto)
}

func (r *GormOrderItemRepository) Update(ctx context.Context, item *order.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderItemDTO{}).
		Where("id = ?", item.ID()).
		Updates(map[string]any{"quantity": item.Quantity(), "deleted": item.IsDeleted()})
	if result.Error != nil {
		return errs.WrapPersistence("order_items.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderItem", item.ID())
	}

	return nil
}

func (r *GormOrderItemRepository) Get(ctx context.Context, id int64) (*order.Item, error) {
	var dto OrderItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderItem", id)
		}
		return nil, errs.WrapPersistence("order_items.get", err)
	}

	return itemToDomain(dto)
}

func (r *GormOrderItemRepository) Search(
	ctx context.Context,
	filter ports.OrderItemFilter,
	page pagination.Page,
) ([]*order.Item, error) {
	query := r.db.WithContext(ctx).Model(&OrderItemDTO{})
	if len(filter.OrderIDs) > 0 {
		query = query.Where("order_id IN ?", filter.OrderIDs)
	}
	if len(filter.ProductIDs) > 0 {
		query = query.Where("product_id IN ?", filter.ProductIDs)
	}
	if !filter.IncludeDeleted {
		query = query.Where("deleted = ?", false)
	}

	var dtos []OrderItemDTO
	if err := query.Order("id").Offset(page.Offset()).Limit(page.Limit()).Find(&dtos).Error; err != nil {
		return nil, errs.WrapPersistence("order_items.search", err)
	}

	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
