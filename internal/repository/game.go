package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const gameKeyPrefix = "game:"

// GameRepository keeps the current game of every browser session.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetBySession(ctx context.Context, sessionID string) (*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGameRepository stores games in Redis. Entries expire after ttl; zero keeps them forever.
func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error {
	if sessionID == "" {
		return apperror.ErrSessionRequired
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKeyPrefix+sessionID, gameJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetBySession(ctx context.Context, sessionID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by session: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}
