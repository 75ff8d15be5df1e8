package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameManager interface {
	NewGame(ctx context.Context, settings entity.Settings) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, mark entity.Mark, move entity.Move) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	DescribeTree(ctx context.Context, gameID string, mark entity.Mark) (string, error)
}

type Server struct {
	logger   *slog.Logger
	games    gameManager
	defaults entity.Settings
}

// New returns the REST server. defaults fill the settings a new game request leaves out.
func New(logger *slog.Logger, games gameManager, defaults entity.Settings) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		games:    games,
		defaults: defaults,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("POST /games", that.handleNewGame)
	mux.HandleFunc("GET /games/{id}", that.handleGetGame)
	mux.HandleFunc("DELETE /games/{id}", that.handleDeleteGame)
	mux.HandleFunc("POST /games/{id}/turns", that.handleMakeTurn)
	mux.HandleFunc("GET /games/{id}/tree/{mark}", that.handleDescribeTree)

	return mux
}

// Start serves until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
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
