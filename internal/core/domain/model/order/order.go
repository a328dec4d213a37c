package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/pkg/errs"
)

// Actions that are guarded by state without changing it.
const (
	ActionAddItems             = "add items"
	ActionRemoveItems          = "remove items"
	ActionRecordProcessingStep = "record processing step"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the lifecycle. Its id is assigned by storage, so a
// freshly created order has ID 0 until the repository returns the persisted copy.
//
// Order follows these invariants:
//   - createdBy is non-blank and stored trimmed
//   - createdAt is stored in UTC
//   - state changes only through Apply, which consults the transition table
type Order struct {
	id        int64
	state     State
	createdAt time.Time
	createdBy string

	isConstructed bool
}

// NewOrder creates an order in the Created state.
//
// Example:
//
//	o, err := order.NewOrder("alice", time.Now())
//	if err != nil {
//	    // createdBy was blank
//	}
func NewOrder(createdBy string, createdAt time.Time) (*Order, error) {
	o := &Order{
		state:         Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCreatedBy(createdBy),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order.
func RestoreOrder(id int64, state State, createdAt time.Time, createdBy string) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	o := &Order{
		id:            id,
		state:         state,
		isConstructed: true,
	}
	if err := errors.Join(
		o.setCreatedBy(createdBy),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) State() State {
	return o.state
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) CreatedBy() string {
	return o.createdBy
}

// Apply moves the order along t and returns the state it left.
// The order is unchanged when t is not accepted from the current state.
func (o *Order) Apply(t Transition) (State, error) {
	from := o.state
	to, err := t.Apply(from)
	if err != nil {
		return from, err
	}
	o.state = to
	return from, nil
}

// EnsureState rejects action unless the order is in one of allowed.
func (o *Order) EnsureState(action string, allowed ...State) error {
	for _, s := range allowed {
		if o.state == s {
			return nil
		}
	}
	return errs.NewInvalidStateError(action, o.state.String(), stateNames(allowed)...)
}

func (o *Order) setCreatedBy(createdBy string) error {
	trimmed := strings.TrimSpace(createdBy)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("createdBy")
	}
	o.createdBy = trimmed
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}
