package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

type stateReader interface {
	State() entity.SessionState
}

// stateHandler serves the current snapshot in the same form clients
// receive over the socket.
func stateHandler(logger *slog.Logger, session stateReader) http.HandlerFunc {
	log := logger.With("method", "stateHandler")

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(session.State()); err != nil {
			log.Error("failed to encode state", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
