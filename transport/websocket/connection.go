package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	closeWait = time.Second
)

// connection adapts a websocket to broadcast.ClientHandle. Gorilla allows a
// single concurrent writer, so every write goes through writeMutex.
type connection struct {
	id   string
	conn *websocket.Conn

	writeMutex sync.Mutex
}

func newConnection(conn *websocket.Conn) *connection {
	return &connection{
		id:   uuid.NewString(),
		conn: conn,
	}
}

func (that *connection) ID() string {
	return that.id
}

// Send writes payload as a text frame, bounded by the ctx deadline.
func (that *connection) Send(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(writeWait)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := that.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}

	return that.conn.WriteMessage(websocket.TextMessage, payload)
}

func (that *connection) sendError(ctx context.Context, err error) error {
	return that.Send(ctx, encodeError(err))
}

// closeWith sends a close frame with code and reason.
func (that *connection) closeWith(code int, reason string) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	message := websocket.FormatCloseMessage(code, reason)
	return that.conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(closeWait))
}
