package queries

import (
	"errors"
	"strings"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/guard"
	"orders/internal/pkg/pagination"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// SearchOrdersQuery lists orders ordered by id. Empty criteria match every order.
type SearchOrdersQuery struct {
	filter ports.OrderFilter
	page   pagination.Page

	guard guard.ConstructorGuard
}

// NewSearchOrdersQuery parses states by their persisted names.
func NewSearchOrdersQuery(
	ids []int64,
	states []string,
	createdBy string,
	pageNumber, pageSize int,
) (SearchOrdersQuery, error) {
	page, err := pagination.NewPage(pageNumber, pageSize)
	if err != nil {
		return SearchOrdersQuery{}, err
	}

	parsed := make([]order.State, 0, len(states))
	var stateErrs []error
	for _, s := range states {
		state, err := order.ParseState(strings.TrimSpace(s))
		if err != nil {
			stateErrs = append(stateErrs, err)
			continue
		}
		parsed = append(parsed, state)
	}
	if err = errors.Join(stateErrs...); err != nil {
		return SearchOrdersQuery{}, err
	}

	return SearchOrdersQuery{
		filter: ports.OrderFilter{
			IDs:       ids,
			States:    parsed,
			CreatedBy: strings.TrimSpace(createdBy),
		},
		page:  page,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

type OrderResponse struct {
	ID        int64     `json:"id"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
