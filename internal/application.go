package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
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

	gameRepo, closeRepo, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			log.Error("could not close game storage", "error", closeErr)
		}
	}()

	gameUseCase := usecase.NewGameManager(logger, gameRepo)
	server := rest.New(logger, gameUseCase, conf.SessionTTL)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
	if err = server.Start(ctx, conf.HTTPPort, conf.ShutdownTimeout); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newGameRepository opens the storage chosen in config and returns its closer.
func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemoryGameRepository(conf.SessionTTL), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString, conf.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage, conf.SessionTTL), redisStorage.Close, nil
}
