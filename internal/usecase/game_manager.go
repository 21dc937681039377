package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/pkg"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetBySession(ctx context.Context, sessionID string) (*entity.Game, error)
}

// GameManager runs the game of each browser session on top of a session store.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    pkg.GenerateGameID,
	}
}

// GetOrCreateGame returns the session's current game, starting one if there is none.
func (that *GameManager) GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, apperror.ErrSessionRequired
	}

	game, err := that.gameRepo.GetBySession(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed get game by session: %w", err)
	}

	game, err = that.createGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return game, nil
}

// MakeMove applies a move for the session's current player. Moves the game
// ignores are not errors; the unchanged game is returned and nothing is stored.
func (that *GameManager) MakeMove(ctx context.Context, sessionID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "cell", cell)

	game, err := that.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log = log.With("gameID", game.ID)

	player := game.CurrentPlayer()
	if !game.ApplyMove(cell) {
		log.Debug("move ignored", "status", game.Status(), "occupant", game.Cell(cell).String())

		return game, nil
	}

	if err = that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	log.Debug("move applied", "player", player.String(), "status", game.Status())

	if game.IsFinished() {
		log.Info("game finished", "status", game.Status(), "winner", game.Winner().String())
	}

	return game, nil
}

// NewGame discards the session's game and starts a fresh one.
func (that *GameManager) NewGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, apperror.ErrSessionRequired
	}

	game, err := that.createGame(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed reset game: %w", err)
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game := entity.NewGame(that.newID())

	if err := that.updateGame(ctx, sessionID, game); err != nil {
		return nil, err
	}

	that.logger.Info("game started", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, sessionID string, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, sessionID, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
