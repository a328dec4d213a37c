package historyrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/pagination"

	"gorm.io/gorm"
)

var _ ports.HistoryRepository = &GormHistoryRepository{}

// GormHistoryRepository implements ports.HistoryRepository using GORM.
// Entries are only inserted; the sequence behind ID gives the ledger its order.
type GormHistoryRepository struct {
	db *gorm.DB
}

func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) Append(ctx context.Context, item *history.Item) (*history.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	dto, err := fromDomain(item)
	if err != nil {
		return nil, err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.WrapPersistence("order_history.append", err)
	}

	return history.RestoreItem(dto.ID, item.OrderID(), item.CreatedAt(), item.Payload())
}

// FindEqual compares timestamps at microsecond precision, the resolution stored by Postgres.
func (r *GormHistoryRepository) FindEqual(ctx context.Context, item *history.Item) (*history.Item, bool, error) {
	payload, err := history.MarshalPayload(item.Payload())
	if err != nil {
		return nil, false, err
	}

	var dtos []HistoryDTO
	err = r.db.WithContext(ctx).
		Where("order_id = ? AND kind = ? AND created_at = ? AND payload = CAST(? AS jsonb)",
			item.OrderID(), item.Kind().String(), item.CreatedAt().Truncate(time.Microsecond), string(payload)).
		Order("id").
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, false, errs.WrapPersistence("order_history.find_equal", err)
	}
	if len(dtos) == 0 {
		return nil, false, nil
	}

	stored, err := toDomain(dtos[0])
	if err != nil {
		return nil, false, err
	}
	return stored, true, nil
}

func (r *GormHistoryRepository) Search(
	ctx context.Context,
	filter ports.HistoryFilter,
	page pagination.Page,
) ([]*history.Item, error) {
	query := r.db.WithContext(ctx).Model(&HistoryDTO{})
	if len(filter.OrderIDs) > 0 {
		query = query.Where("order_id IN ?", filter.OrderIDs)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", filter.Kind.String())
	}

	var dtos []HistoryDTO
	if err := query.Order("id").Offset(page.Offset()).Limit(page.Limit()).Find(&dtos).Error; err != nil {
		return nil, errs.WrapPersistence("order_history.search", err)
	}

	items := make([]*history.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
