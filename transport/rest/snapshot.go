package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
)

type snapshotReader interface {
	Get(ctx context.Context) (entity.SessionState, error)
}

// snapshotHandler serves the last snapshot mirrored to Redis, which may lag
// behind /state while the mirror catches up.
func snapshotHandler(logger *slog.Logger, snapshots snapshotReader) http.HandlerFunc {
	log := logger.With("method", "snapshotHandler")

	return func(w http.ResponseWriter, r *http.Request) {
		state, err := snapshots.Get(r.Context())
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}

		if err != nil {
			log.Error("failed to read mirrored snapshot", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if err = json.NewEncoder(w).Encode(state); err != nil {
			log.Error("failed to encode snapshot", "error", err)
		}
	}
}
