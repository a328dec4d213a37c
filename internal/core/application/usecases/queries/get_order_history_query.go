package queries

import (
	"errors"
	"fmt"
	"time"

	"orders/internal/core/domain/model/history"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
	"orders/internal/pkg/pagination"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery pages through the ledger of one order, oldest entry first.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(orderID, 1, 50, nil)
//	if err != nil {
//	    return err
//	}
//	entries, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct {
	orderID int64
	page    pagination.Page
	kind    *history.Kind

	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery rejects non-positive page values. A nil kind returns every kind.
func NewGetOrderHistoryQuery(orderID int64, pageNumber, pageSize int, kind *history.Kind) (GetOrderHistoryQuery, error) {
	if orderID <= 0 {
		return GetOrderHistoryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"orderId", fmt.Errorf("%d is not greater than 0", orderID))
	}
	page, err := pagination.NewPage(pageNumber, pageSize)
	if err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{
		orderID: orderID,
		page:    page,
		kind:    kind,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

// HistoryEntryResponse is one ledger entry as returned to callers.
type HistoryEntryResponse struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"orderId"`
	CreatedAt time.Time       `json:"createdAt"`
	Kind      history.Kind    `json:"kind"`
	Payload   history.Payload `json:"payload"`
}
