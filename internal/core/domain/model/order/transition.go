package order

import (
	"slices"

	"orders/internal/pkg/errs"
)

// Transition is a named move to a target state, accepted only from its source states.
type Transition struct {
	action string
	to     State
	from   []State
}

var (
	// MoveToProcessing hands a created order to the fulfillment workflow.
	MoveToProcessing = Transition{action: "move to processing", to: Processing, from: []State{Created}}

	// Complete marks a processing order as delivered.
	Complete = Transition{action: "complete", to: Completed, from: []State{Processing}}

	// Cancel is the caller-initiated cancellation.
	Cancel = Transition{action: "cancel", to: Cancelled, from: []State{Created, Processing}}

	// CancelDuringProcessing is the workflow-initiated cancellation of a processing order.
	CancelDuringProcessing = Transition{action: "cancel during processing", to: Cancelled, from: []State{Processing}}
)

// Transitions returns the full transition table.
func Transitions() []Transition {
	return []Transition{MoveToProcessing, Complete, Cancel, CancelDuringProcessing}
}

// Action is the human-readable name used in errors.
func (t Transition) Action() string {
	return t.action
}

// To is the target state.
func (t Transition) To() State {
	return t.to
}

// AllowedFrom returns a copy of the source states.
func (t Transition) AllowedFrom() []State {
	return slices.Clone(t.from)
}

// Allows reports whether the transition is accepted from s.
func (t Transition) Allows(s State) bool {
	return slices.Contains(t.from, s)
}

// Apply returns the target state when the transition is accepted from current.
func (t Transition) Apply(current State) (State, error) {
	if !t.Allows(current) {
		return current, errs.NewInvalidStateError(t.action, current.String(), stateNames(t.from)...)
	}
	return t.to, nil
}
