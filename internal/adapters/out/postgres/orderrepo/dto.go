// Package orderrepo persists the order aggregate and its items.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/order"
)

// OrderDTO is a row of the orders table. State is stored by name.
type OrderDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	State     string    `gorm:"type:text;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	CreatedBy string    `gorm:"type:text;not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of the order_items table. Rows are soft deleted through Deleted.
type OrderItemDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"not null;index"`
	ProductID int64 `gorm:"not null;index"`
	Quantity  int   `gorm:"not null"`
	Deleted   bool  `gorm:"not null;default:false"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func orderFromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:        aggregate.ID(),
		State:     aggregate.State().String(),
		CreatedAt: aggregate.CreatedAt(),
		CreatedBy: aggregate.CreatedBy(),
	}
}

func orderToDomain(dto OrderDTO) (*order.Order, error) {
	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(dto.ID, state, dto.CreatedAt.UTC(), dto.CreatedBy)
}

func itemFromDomain(item *order.Item) OrderItemDTO {
	return OrderItemDTO{
		ID:        item.ID(),
		OrderID:   item.OrderID(),
		ProductID: item.ProductID(),
		Quantity:  item.Quantity(),
		Deleted:   item.IsDeleted(),
	}
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	return order.RestoreItem(dto.ID, dto.OrderID, dto.ProductID, dto.Quantity, dto.Deleted)
}
