// Package outboxrepo persists lifecycle events waiting for the relay.
package outboxrepo

import (
	"time"

	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxDTO is a row of the outbox table. A message is pending while both SentAt and
// DeadLetteredAt are NULL.
type OutboxDTO struct {
	ID             int64      `gorm:"primaryKey;autoIncrement"`
	EventID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	OrderID        int64      `gorm:"not null;index"`
	Kind           string     `gorm:"type:text;not null"`
	Payload        []byte     `gorm:"type:jsonb;not null"`
	CreatedAt      time.Time  `gorm:"not null"`
	SentAt         *time.Time `gorm:"index"`
	DeadLetteredAt *time.Time
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func fromDomain(m *outbox.Message) OutboxDTO {
	return OutboxDTO{
		ID:        m.ID(),
		EventID:   m.EventID(),
		OrderID:   m.OrderID(),
		Kind:      m.Kind().String(),
		Payload:   m.Payload(),
		CreatedAt: m.CreatedAt(),
		SentAt:    m.SentAt(),
	}
}

func toDomain(dto OutboxDTO) (*outbox.Message, error) {
	var sentAt *time.Time
	if dto.SentAt != nil {
		at := dto.SentAt.UTC()
		sentAt = &at
	}
	return outbox.RestoreMessage(
		dto.ID,
		dto.EventID,
		dto.OrderID,
		lifecycle.Kind(dto.Kind),
		dto.Payload,
		dto.CreatedAt.UTC(),
		sentAt,
	)
}
