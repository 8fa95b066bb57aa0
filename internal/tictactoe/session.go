package tictactoe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/monitor"
)

const DefaultResetDelay = 5 * time.Second

type handleRegistry interface {
	Register(mark entity.Mark, handle broadcast.ClientHandle)
	Unregister(mark entity.Mark)
}

// Listener receives every published snapshot, in the order the updates
// were applied.
type Listener interface {
	OnStateChange(ctx context.Context, state entity.SessionState)
}

// Session is the single authoritative game between two player slots. All
// methods are safe for concurrent use.
type Session struct {
	logger     *slog.Logger
	metrics    *monitor.Metrics
	registry   handleRegistry
	listeners  []Listener
	resetDelay time.Duration

	mutex           sync.Mutex
	state           entity.SessionState
	resetTimer      *time.Timer
	resetGeneration uint64
	closed          bool

	queue    *publishQueue
	done     chan struct{}
	doneOnce sync.Once
}

func NewSession(
	logger *slog.Logger,
	metrics *monitor.Metrics,
	registry handleRegistry,
	resetDelay time.Duration,
	listeners ...Listener,
) *Session {
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}

	return &Session{
		logger:     logger.With("component", "session"),
		metrics:    metrics,
		registry:   registry,
		listeners:  listeners,
		resetDelay: resetDelay,

		state: entity.NewSessionState(),

		queue: newPublishQueue(),
		done:  make(chan struct{}),
	}
}

// Start delivers published snapshots to the listeners until ctx is done.
func (that *Session) Start(ctx context.Context) error {
	defer that.doneOnce.Do(func() { close(that.done) })

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-that.queue.notify:
			for _, state := range that.queue.drain() {
				for _, listener := range that.listeners {
					listener.OnStateChange(ctx, state)
				}
			}
		}
	}
}

// Close is called on shutdown. It cancels a pending round reset, and rounds
// resolved afterwards are no longer reset.
func (that *Session) Close() {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.closed = true
	that.cancelReset()
}

// State returns the current snapshot.
func (that *Session) State() entity.SessionState {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	return that.state
}

// Join seats handle in the first free slot, X before O. It reports false
// when both slots are taken; an occupant is never displaced.
func (that *Session) Join(handle broadcast.ClientHandle) (entity.Mark, bool) {
	log := that.logger.With("method", "Join", "client", handle.ID())

	that.mutex.Lock()
	defer that.mutex.Unlock()

	mark, ok := that.freeSlot()
	if !ok {
		log.Info("join rejected", "error", apperror.ErrSessionFull)
		return entity.NoMark, false
	}

	that.registry.Register(mark, handle)
	that.apply(that.state.WithPlayer(mark))

	log.Info("player joined", "mark", mark)

	return mark, true
}

// Leave frees the slot of mark. Leaving an empty slot changes nothing.
func (that *Session) Leave(mark entity.Mark) {
	log := that.logger.With("method", "Leave", "mark", mark)

	that.mutex.Lock()
	defer that.mutex.Unlock()

	that.registry.Unregister(mark)

	if !that.state.IsConnected(mark) {
		return
	}

	that.apply(that.state.WithoutPlayer(mark))

	log.Info("player left")
}

// Move applies a turn. Invalid moves are dropped without a state change or
// broadcast; the reason is only logged.
func (that *Session) Move(mark entity.Mark, row, col int) {
	log := that.logger.With("method", "Move", "mark", mark, "row", row, "col", col)

	that.mutex.Lock()
	defer that.mutex.Unlock()

	if err := validateMove(that.state, mark, row, col); err != nil {
		that.metrics.IncMovesRejected()
		log.Debug("move ignored", "error", err)
		return
	}

	next := that.state.WithMove(mark, row, col)
	that.metrics.IncMovesAccepted()

	switch {
	case next.WinningPlayer != entity.NoMark:
		that.metrics.IncRoundsResolved(string(next.WinningPlayer))
		that.armReset()
		log.Info("round won", "winner", next.WinningPlayer)
	case next.IsBoardFull:
		that.metrics.IncRoundsResolved(monitor.ResultDraw)
		that.armReset()
		log.Info("round drawn")
	}

	that.apply(next)
}

// validateMove - checks if the move is valid.
func validateMove(state entity.SessionState, mark entity.Mark, row, col int) error {
	if state.WinningPlayer != entity.NoMark {
		return apperror.ErrGameFinished
	}

	if !mark.IsValid() {
		return apperror.ErrUnknownPlayer
	}

	if !state.Board.InBounds(row, col) {
		return apperror.ErrInvalidCell
	}

	if state.PlayerAtTurn != mark {
		return apperror.ErrNotYourTurn
	}

	if !state.Board.IsEmpty(row, col) {
		return apperror.ErrCellOccupied
	}

	return nil
}

func (that *Session) freeSlot() (entity.Mark, bool) {
	for _, mark := range entity.Marks {
		if !that.state.IsConnected(mark) {
			return mark, true
		}
	}

	return entity.NoMark, false
}

// armReset schedules a round reset and supersedes the pending one. Must be
// called with the mutex held.
func (that *Session) armReset() {
	if that.closed {
		return
	}

	that.cancelReset()

	generation := that.resetGeneration
	that.resetTimer = time.AfterFunc(that.resetDelay, func() {
		that.fireReset(generation)
	})
}

// cancelReset stops the pending timer and invalidates a callback that may
// already be waiting for the mutex.
func (that *Session) cancelReset() {
	if that.resetTimer != nil {
		that.resetTimer.Stop()
		that.resetTimer = nil
	}

	that.resetGeneration++
}

func (that *Session) fireReset(generation uint64) {
	that.mutex.Lock()
	defer that.mutex.Unlock()

	if generation != that.resetGeneration || that.closed {
		return
	}

	that.resetTimer = nil
	that.metrics.IncResets()
	that.apply(that.state.Reset())

	that.logger.Info("new round started")
}

// apply installs next and queues it for the listeners without waiting for
// delivery. Must be called with the mutex held so the queue order matches
// the update order.
func (that *Session) apply(next entity.SessionState) {
	that.state = next
	that.metrics.SetConnectedPlayers(len(next.ConnectedPlayers))

	select {
	case <-that.done:
		return
	default:
	}

	that.queue.push(next)
}
