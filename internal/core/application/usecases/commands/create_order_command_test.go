package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("trims createdBy", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand("  alice ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "alice", cmd.CreatedBy())
	})

	t.Run("rejects blank createdBy", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(" \t")

		require.ErrorIs(t, err, errs.ErrValidation)
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestCommandConstructors(t *testing.T) {
	t.Run("add item rejects non-positive quantity", func(t *testing.T) {
		_, err := commands.NewAddItemCommand(1, 7, 0)
		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("add item joins errors", func(t *testing.T) {
		_, err := commands.NewAddItemCommand(0, 0, -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId")
		assert.Contains(t, err.Error(), "productId")
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("remove item requires ids", func(t *testing.T) {
		_, err := commands.NewRemoveItemCommand(1, 0)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("state change requires order id", func(t *testing.T) {
		_, err := commands.NewCompleteOrderCommand(-4)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("relay batch size bounded", func(t *testing.T) {
		_, err := commands.NewRelayOutboxCommand(commands.MaxRelayBatchSize + 1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value commands fail validation", func(t *testing.T) {
		require.Error(t, commands.AddItemCommand{}.Validate())
		require.Error(t, commands.RemoveItemCommand{}.Validate())
		require.Error(t, commands.ChangeOrderStateCommand{}.Validate())
		require.Error(t, commands.RecordProcessingStepCommand{}.Validate())
		require.Error(t, commands.CreateProductCommand{}.Validate())
		require.Error(t, commands.RelayOutboxCommand{}.Validate())
	})
}
