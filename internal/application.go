package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-session/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-session/internal/config"
	"github.com/rocketscienceinc/tictactoe-session/internal/monitor"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository"
	"github.com/rocketscienceinc/tictactoe-session/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-session/transport/rest"
	"github.com/rocketscienceinc/tictactoe-session/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	metrics := monitor.NewMetrics()
	broadcaster := broadcast.New(logger, metrics, conf.Session.SendTimeout)
	listeners := []tictactoe.Listener{broadcaster}

	var snapshots repository.SnapshotRepository
	if conf.Redis.Enabled {
		repo, closeStorage, err := newSnapshotRepository(ctx, logger, &conf.Redis)
		if err != nil {
			return err
		}
		defer closeStorage()

		snapshots = repo
		listeners = append(listeners, repository.NewMirror(logger, snapshots))
	}

	session := tictactoe.NewSession(logger, metrics, broadcaster, conf.Session.ResetDelay, listeners...)
	defer session.Close()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return session.Start(groupCtx)
	})

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.Start(groupCtx, logger, conf.HTTPPort, rest.NewHandler(logger, session, snapshots, metrics.Handler())); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := websocket.New(logger, session).Start(groupCtx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newSnapshotRepository connects to Redis and returns the snapshot store
// along with its close function.
func newSnapshotRepository(
	ctx context.Context,
	logger *slog.Logger,
	conf *config.Redis,
) (repository.SnapshotRepository, func(), error) {
	redisAddrString := conf.GetRedisAddr()
	if conf.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStorage := func() {
		if err := redisStorage.Close(); err != nil {
			logger.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewSnapshotRepository(redisStorage, conf.Key, conf.TTL), closeStorage, nil
}
