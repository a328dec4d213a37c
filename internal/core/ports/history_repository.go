package ports

import (
	"context"

	"orders/internal/core/domain/model/history"
	"orders/internal/pkg/pagination"
)

// HistoryFilter narrows a ledger search. Empty OrderIDs matches every order and a nil
// Kind matches every kind.
type HistoryFilter struct {
	OrderIDs []int64
	Kind     *history.Kind
}

// HistoryRepository is the append-only ledger of order mutations.
type HistoryRepository interface {
	// Append stores the entry inside the caller's unit of work and returns it with its
	// storage-assigned id. Entry ids grow monotonically.
	Append(ctx context.Context, item *history.Item) (*history.Item, error)

	// FindEqual returns the oldest stored entry of the same order with the same
	// timestamp and payload as item. found is false when there is none.
	FindEqual(ctx context.Context, item *history.Item) (stored *history.Item, found bool, err error)

	// Search returns entries ordered by id ascending.
	Search(ctx context.Context, filter HistoryFilter, page pagination.Page) ([]*history.Item, error)
}
