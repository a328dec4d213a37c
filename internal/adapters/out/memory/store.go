// Package memory is a transactional in-memory implementation of the persistence port.
// A unit of work holds the store-wide write lock from Begin until Commit or Rollback,
// so units of work are fully serialized. Rollback restores the snapshot taken at Begin.
// Identifiers come from per-table sequences that are not rolled back.
package memory

import (
	"maps"
	"sync"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/core/domain/model/lifecycle"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type orderRow struct {
	id        int64
	state     order.State
	createdAt time.Time
	createdBy string
}

type itemRow struct {
	id        int64
	orderID   int64
	productID int64
	quantity  int
	deleted   bool
}

type historyRow struct {
	id        int64
	orderID   int64
	createdAt time.Time
	payload   history.Payload
}

type productRow struct {
	id    int64
	name  string
	price decimal.Decimal
}

type outboxRow struct {
	id        int64
	eventID   uuid.UUID
	orderID   int64
	kind      lifecycle.Kind
	payload   []byte
	createdAt time.Time
	sentAt    *time.Time
	deadAt    *time.Time
}

type tables struct {
	orders   map[int64]orderRow
	items    map[int64]itemRow
	history  map[int64]historyRow
	products map[int64]productRow
	outbox   map[int64]outboxRow
}

func newTables() tables {
	return tables{
		orders:   make(map[int64]orderRow),
		items:    make(map[int64]itemRow),
		history:  make(map[int64]historyRow),
		products: make(map[int64]productRow),
		outbox:   make(map[int64]outboxRow),
	}
}

func (t tables) clone() tables {
	return tables{
		orders:   maps.Clone(t.orders),
		items:    maps.Clone(t.items),
		history:  maps.Clone(t.history),
		products: maps.Clone(t.products),
		outbox:   maps.Clone(t.outbox),
	}
}

type sequences struct {
	order, item, history, product, outbox int64
}

// Store holds every table. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data tables
	seq  sequences
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

func (s *Store) next(counter *int64) int64 {
	*counter++
	return *counter
}
