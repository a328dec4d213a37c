// Package historyrepo persists the append-only order history ledger.
package historyrepo

import (
	"time"

	"orders/internal/core/domain/model/history"
)

// HistoryDTO is a row of the order_history table. Kind is stored next to the payload
// so entries can be filtered without decoding JSON.
type HistoryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	Kind      string    `gorm:"type:text;not null;index"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
}

func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(item *history.Item) (HistoryDTO, error) {
	payload, err := history.MarshalPayload(item.Payload())
	if err != nil {
		return HistoryDTO{}, err
	}
	return HistoryDTO{
		ID:        item.ID(),
		OrderID:   item.OrderID(),
		CreatedAt: item.CreatedAt(),
		Kind:      item.Kind().String(),
		Payload:   payload,
	}, nil
}

func toDomain(dto HistoryDTO) (*history.Item, error) {
	kind, err := history.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	payload, err := history.UnmarshalPayload(kind, dto.Payload)
	if err != nil {
		return nil, err
	}
	return history.RestoreItem(dto.ID, dto.OrderID, dto.CreatedAt.UTC(), payload)
}
