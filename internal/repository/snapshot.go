package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

type SnapshotRepository interface {
	Save(ctx context.Context, state entity.SessionState) error
	Get(ctx context.Context) (entity.SessionState, error)
}

type dbSnapshot struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewSnapshotRepository stores the latest snapshot under key. A zero ttl
// keeps it without expiry.
func NewSnapshotRepository(client *redis.Client, key string, ttl time.Duration) SnapshotRepository {
	return &dbSnapshot{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (that *dbSnapshot) Save(ctx context.Context, state entity.SessionState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal snapshot: %w", err)
	}

	if err = that.client.Set(ctx, that.key, stateJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}

	return nil
}

func (that *dbSnapshot) Get(ctx context.Context) (entity.SessionState, error) {
	response, err := that.client.Get(ctx, that.key).Result()

	if errors.Is(err, redis.Nil) {
		return entity.SessionState{}, ErrSnapshotNotFound
	}

	if err != nil {
		return entity.SessionState{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var state entity.SessionState
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return entity.SessionState{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return state, nil
}
