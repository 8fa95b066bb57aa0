package broadcast

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/monitor"
)

// ClientHandle is a connected client that can receive encoded snapshots.
type ClientHandle interface {
	ID() string
	Send(ctx context.Context, payload []byte) error
}

// Broadcaster keeps one client handle per mark and fans snapshots out to them.
type Broadcaster struct {
	logger      *slog.Logger
	metrics     *monitor.Metrics
	sendTimeout time.Duration

	handlesMutex sync.RWMutex
	handles      map[entity.Mark]ClientHandle
}

func New(logger *slog.Logger, metrics *monitor.Metrics, sendTimeout time.Duration) *Broadcaster {
	return &Broadcaster{
		logger:      logger.With("component", "broadcaster"),
		metrics:     metrics,
		sendTimeout: sendTimeout,

		handles: make(map[entity.Mark]ClientHandle),
	}
}

// Register binds handle to mark, replacing any previous handle for it.
func (that *Broadcaster) Register(mark entity.Mark, handle ClientHandle) {
	that.handlesMutex.Lock()
	that.handles[mark] = handle
	that.handlesMutex.Unlock()
}

func (that *Broadcaster) Unregister(mark entity.Mark) {
	that.handlesMutex.Lock()
	delete(that.handles, mark)
	that.handlesMutex.Unlock()
}

// Handles returns a copy of the registry, safe to iterate without locking.
func (that *Broadcaster) Handles() map[entity.Mark]ClientHandle {
	that.handlesMutex.RLock()
	defer that.handlesMutex.RUnlock()

	handles := make(map[entity.Mark]ClientHandle, len(that.handles))
	for mark, handle := range that.handles {
		handles[mark] = handle
	}

	return handles
}

// Broadcast encodes the snapshot once and sends it to every registered
// handle concurrently, returning when all sends are done. A failed or slow
// send is logged and does not affect the other clients.
func (that *Broadcaster) Broadcast(ctx context.Context, state entity.SessionState) {
	log := that.logger.With("method", "Broadcast")

	payload, err := json.Marshal(state)
	if err != nil {
		log.Error("failed to marshal session state", "error", err)
		return
	}

	var wg sync.WaitGroup

	for mark, handle := range that.Handles() {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := that.send(ctx, handle, payload); err != nil {
				that.metrics.IncBroadcastFailures()
				log.Warn("failed to send state", "mark", mark, "client", handle.ID(), "error", err)
				return
			}

			that.metrics.IncBroadcastSends()
		}()
	}

	wg.Wait()
}

// OnStateChange lets the broadcaster listen to session updates.
func (that *Broadcaster) OnStateChange(ctx context.Context, state entity.SessionState) {
	that.Broadcast(ctx, state)
}

func (that *Broadcaster) send(ctx context.Context, handle ClientHandle, payload []byte) error {
	if that.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.sendTimeout)
		defer cancel()
	}

	return handle.Send(ctx, payload)
}
