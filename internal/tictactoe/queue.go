package tictactoe

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// publishQueue is an unbounded FIFO of snapshots between the session and its
// worker. push never blocks, so a slow listener cannot stall a mutation.
type publishQueue struct {
	mutex   sync.Mutex
	pending []entity.SessionState
	notify  chan struct{}
}

func newPublishQueue() *publishQueue {
	return &publishQueue{
		notify: make(chan struct{}, 1),
	}
}

func (that *publishQueue) push(state entity.SessionState) {
	that.mutex.Lock()
	that.pending = append(that.pending, state)
	that.mutex.Unlock()

	select {
	case that.notify <- struct{}{}:
	default:
	}
}

// drain takes every pending snapshot in push order.
func (that *publishQueue) drain() []entity.SessionState {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	batch := that.pending
	that.pending = nil

	return batch
}

func (that *publishQueue) len() int {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	return len(that.pending)
}
