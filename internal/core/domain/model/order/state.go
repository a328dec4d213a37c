package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// State is the lifecycle state of an order.
type State int

const (
	// Unknown catches uninitialized State values.
	Unknown State = iota

	// Created is the initial state. Items can be added and removed only here.
	Created

	// Processing means the order was handed to the fulfillment workflow.
	Processing

	// Completed is terminal: the order was delivered.
	Completed

	// Cancelled is terminal: the order was cancelled by a caller or by the workflow.
	Cancelled
)

func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:    "unknown",
		Created:    "created",
		Processing: "processing",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// States lists every valid state in lifecycle order.
func States() []State {
	return []State{Created, Processing, Completed, Cancelled}
}

// ParseState converts a persisted state name back to a State.
func ParseState(s string) (State, error) {
	for _, state := range States() {
		if state.String() == s {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a valid state", s))
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String implements fmt.Stringer. The value is also the persisted representation.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s State) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func stateNames(states []State) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.String())
	}
	return names
}
