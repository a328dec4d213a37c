package order_test

import (
	"fmt"
	"testing"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "created", order.Created.String())
	assert.Equal(t, "processing", order.Processing.String())
	assert.Equal(t, "completed", order.Completed.String())
	assert.Equal(t, "cancelled", order.Cancelled.String())
	assert.Equal(t, "unknown", order.State(42).String())
}

func TestParseState(t *testing.T) {
	for _, s := range order.States() {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := order.ParseState(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	_, err := order.ParseState("Shipped")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestState_IsTerminal(t *testing.T) {
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Processing.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
}

func TestTransitionTable(t *testing.T) {
	allowed := map[string]map[order.State]order.State{
		"move to processing":       {order.Created: order.Processing},
		"complete":                 {order.Processing: order.Completed},
		"cancel":                   {order.Created: order.Cancelled, order.Processing: order.Cancelled},
		"cancel during processing": {order.Processing: order.Cancelled},
	}

	for _, tr := range order.Transitions() {
		for _, from := range order.States() {
			t.Run(fmt.Sprintf("%s from %s", tr.Action(), from), func(t *testing.T) {
				to, err := tr.Apply(from)

				want, ok := allowed[tr.Action()][from]
				if ok {
					require.NoError(t, err)
					assert.Equal(t, want, to)
					return
				}

				var stateErr *errs.InvalidStateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, tr.Action(), stateErr.Action)
				assert.Equal(t, from.String(), stateErr.State)
				assert.Len(t, stateErr.Allowed, len(allowed[tr.Action()]))
				assert.Equal(t, from, to)
			})
		}
	}
}

func TestTerminalStatesHaveNoOutgoingTransition(t *testing.T) {
	for _, tr := range order.Transitions() {
		assert.False(t, tr.Allows(order.Completed), tr.Action())
		assert.False(t, tr.Allows(order.Cancelled), tr.Action())
	}
}

func TestTransition_AllowedFromIsCopy(t *testing.T) {
	from := order.Cancel.AllowedFrom()
	from[0] = order.Completed

	assert.True(t, order.Cancel.Allows(order.Created))
}
