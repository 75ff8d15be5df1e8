package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	actionNewGame   = "game:new"
	actionGameTurn  = "game:turn"
	actionGameState = "game:state"

	shutdownTimeout = 5 * time.Second
)

type gameManager interface {
	NewGame(ctx context.Context, settings entity.Settings) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, mark entity.Mark, move entity.Move) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type handler func(ctx context.Context, msg *Message, conn *websocket.Conn) error

type Server struct {
	logger   *slog.Logger
	games    gameManager
	defaults entity.Settings

	upgrader websocket.Upgrader
	handlers map[string]handler
}

func New(logger *slog.Logger, games gameManager, defaults entity.Settings) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		games:    games,
		defaults: defaults,

		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		handlers: make(map[string]handler),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameState] = server.handleGameState

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server. It stops when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
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

func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			if err = that.sendErrorResponse(conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendErrorResponse(conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		if err = handle(ctx, &message, conn); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}
