package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameSession interface {
	Join(handle broadcast.ClientHandle) (entity.Mark, bool)
	Leave(mark entity.Mark)
	Move(mark entity.Mark, row, col int)
}

type Server struct {
	logger   *slog.Logger
	session  gameSession
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, session gameSession) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		session: session,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Handler serves the game on /ws. Connections are closed when ctx is done.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	that.handleConnection(ctx, newConnection(conn))
}

// handleConnection seats the client and feeds its moves to the session
// until the connection drops.
func (that *Server) handleConnection(ctx context.Context, client *connection) {
	log := that.logger.With("method", "handleConnection", "client", client.ID())

	mark, ok := that.session.Join(client)
	if !ok {
		if err := client.sendError(ctx, apperror.ErrSessionFull); err != nil {
			log.Debug("failed to send rejection", "error", err)
		}
		if err := client.closeWith(websocket.ClosePolicyViolation, apperror.ErrSessionFull.Error()); err != nil {
			log.Debug("failed to send close frame", "error", err)
		}
		return
	}

	log = log.With("mark", mark)
	log.Info("WebSocket connection established")

	defer that.session.Leave(mark)

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			log.Info("WebSocket connection closed")
			return
		}

		row, col, err := decodeMove(data)
		if err != nil {
			log.Debug("rejected move message", "error", err)
			if err = client.sendError(ctx, err); err != nil {
				log.Debug("failed to send error response", "error", err)
			}
			continue
		}

		that.session.Move(mark, row, col)
	}
}
