package postgres

import (
	"orders/internal/adapters/out/postgres/historyrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/adapters/out/postgres/outboxrepo"
	"orders/internal/adapters/out/postgres/productrepo"

	"gorm.io/gorm"
)

// Models lists every table the engine owns.
func Models() []any {
	return []any{
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&historyrepo.HistoryDTO{},
		&productrepo.ProductDTO{},
		&outboxrepo.OutboxDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
