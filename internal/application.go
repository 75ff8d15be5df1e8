package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// server is anything RunApp keeps alive until the context is canceled.
type server interface {
	Start(ctx context.Context, port string) error
}

// RunApp - runs the REST and WebSocket servers until a signal arrives or one of them fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	defaults, err := conf.Game.Settings()
	if err != nil {
		return fmt.Errorf("invalid game defaults: %w", err)
	}

	redisAddr := conf.Redis.GetRedisAddr()
	if redisAddr == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddr)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}()

	games := usecase.NewGameManager(logger, repository.NewGameRepository(redisStorage, conf.Redis.GameTTL))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	servers := map[string]struct {
		srv  server
		port string
	}{
		"HTTP":      {srv: rest.New(logger, games, defaults), port: conf.HTTPPort},
		"WebSocket": {srv: websocket.New(logger, games, defaults), port: conf.SocketPort},
	}

	errCh := make(chan error, len(servers))
	for name, entry := range servers {
		go func() {
			log.Info("Starting server", "server", name, "port", entry.port)
			if startErr := entry.srv.Start(ctx, entry.port); startErr != nil {
				errCh <- fmt.Errorf("%s server error: %w", name, startErr)
			}
		}()
	}

	select {
	case err = <-errCh:
		log.Error("server failed, shutting down", "error", err)
		return err
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
