package commands_test

import (
	"testing"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestTransitionCommand(t *testing.T) {
	t.Run("should create a valid command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewRequestTransitionCommand(id, order.StatusPickingUp, "on my way")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, id.IsEqual(cmd.OrderID()))
		assert.Equal(t, order.StatusPickingUp, cmd.Target())
		assert.Equal(t, "on my way", cmd.Note())
	})

	t.Run("should allow an empty note", func(t *testing.T) {
		cmd, err := commands.NewRequestTransitionCommand(kernel.NewUUID(), order.StatusDelivered, "")

		require.NoError(t, err)
		assert.Empty(t, cmd.Note())
	})

	t.Run("should reject a zero-value order ID", func(t *testing.T) {
		_, err := commands.NewRequestTransitionCommand(kernel.UUID{}, order.StatusPickingUp, "")

		require.Error(t, err)
	})

	t.Run("should reject an unrecognized target status", func(t *testing.T) {
		_, err := commands.NewRequestTransitionCommand(kernel.NewUUID(), order.Status("LOST"), "")

		require.Error(t, err)
	})

	t.Run("should reject a zero-value command", func(t *testing.T) {
		var cmd commands.RequestTransitionCommand

		assert.Equal(t, commands.ErrRequestTransitionCommandIsNotConstructed, cmd.Validate())
	})
}
