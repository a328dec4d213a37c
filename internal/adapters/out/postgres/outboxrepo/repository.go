package outboxrepo

import (
	"context"
	"time"

	"orders/internal/core/domain/model/outbox"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.OutboxRepository = &GormOutboxRepository{}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.WrapPersistence("outbox.add", err)
	}

	return nil
}

// FetchPending locks up to limit unsent messages, oldest first. Rows locked by another
// relay are skipped, so concurrent relays never publish the same message at once.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL AND dead_lettered_at IS NULL").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.WrapPersistence("outbox.fetch_pending", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []int64, sentAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", ids).
		Where("sent_at IS NULL").
		Update("sent_at", sentAt.UTC()).Error
	return errs.WrapPersistence("outbox.mark_sent", err)
}

func (r *GormOutboxRepository) MarkDeadLettered(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id IN ?", ids).
		Where("sent_at IS NULL AND dead_lettered_at IS NULL").
		Update("dead_lettered_at", at.UTC()).Error
	return errs.WrapPersistence("outbox.mark_dead_lettered", err)
}
