package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

func TestPublishQueue(t *testing.T) {
	t.Run("Drains snapshots in push order", func(t *testing.T) {
		// Given: three snapshots pushed one after another
		queue := newPublishQueue()
		first := entity.NewSessionState()
		second := first.WithPlayer(entity.MarkX)
		third := second.WithPlayer(entity.MarkO)

		queue.push(first)
		queue.push(second)
		queue.push(third)

		// When: draining
		batch := queue.drain()

		// Then: the order is kept and the queue is empty
		require.Len(t, batch, 3)
		assert.Equal(t, first, batch[0])
		assert.Equal(t, second, batch[1])
		assert.Equal(t, third, batch[2])
		assert.Zero(t, queue.len())
		assert.Empty(t, queue.drain())
	})

	t.Run("Push never blocks without a consumer", func(t *testing.T) {
		// Given: nobody reads the queue
		queue := newPublishQueue()

		// When: pushing far more snapshots than the notification buffer holds
		for range 1000 {
			queue.push(entity.NewSessionState())
		}

		// Then: every snapshot is pending and one notification is waiting
		assert.Equal(t, 1000, queue.len())
		assert.Len(t, queue.notify, 1)
	})
}
