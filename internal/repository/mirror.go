package repository

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

type snapshotSaver interface {
	Save(ctx context.Context, state entity.SessionState) error
}

// Mirror writes every published snapshot to the repository for external
// readers. It is never read back by the service.
type Mirror struct {
	logger *slog.Logger
	repo   snapshotSaver
}

func NewMirror(logger *slog.Logger, repo snapshotSaver) *Mirror {
	return &Mirror{
		logger: logger.With("component", "mirror"),
		repo:   repo,
	}
}

func (that *Mirror) OnStateChange(ctx context.Context, state entity.SessionState) {
	if err := that.repo.Save(ctx, state); err != nil {
		that.logger.Error("failed to mirror snapshot", "method", "OnStateChange", "error", err)
	}
}
