package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, ok, err := that.readPayload(msg, conn)
	if !ok {
		return err
	}

	settings := that.defaults
	if payloadReq.Settings != nil {
		settings = mergeSettings(settings, *payloadReq.Settings)
	}

	game, err := that.games.NewGame(ctx, settings)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return that.sendGameError(conn, msg.Action, err)
	}

	log.Info("game created", "gameID", game.ID)

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, ok, err := that.readPayload(msg, conn)
	if !ok {
		return err
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "Game is required")
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "Move is required")
	}

	mark, err := entity.ParseMark(payloadReq.Mark)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	game, err := that.games.MakeTurn(ctx, payloadReq.GameID, mark, *payloadReq.Move)
	if err != nil {
		log.Debug("turn rejected", "gameID", payloadReq.GameID, "error", err)
		return that.sendGameError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	payloadReq, ok, err := that.readPayload(msg, conn)
	if !ok {
		return err
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(conn, msg.Action, "Game is required")
	}

	game, err := that.games.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendGameError(conn, msg.Action, err)
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game})
}

// readPayload decodes the request payload. When it is malformed the client is
// told so and ok is false; err is then the result of that reply.
func (that *Server) readPayload(msg *Message, conn *websocket.Conn) (Payload, bool, error) {
	var payloadReq Payload
	if len(msg.Payload) == 0 {
		return payloadReq, true, nil
	}

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		that.logger.Debug("failed to unmarshal payload", "action", msg.Action, "error", err)
		return payloadReq, false, that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("invalid payload: %v", err))
	}

	return payloadReq, true, nil
}

// sendGameError reports client errors verbatim and hides server ones.
func (that *Server) sendGameError(conn *websocket.Conn, action string, err error) error {
	if usecase.IsClientError(err) || errors.Is(err, apperror.ErrGameNotFound) {
		return that.sendErrorResponse(conn, action, err.Error())
	}

	return that.sendErrorResponse(conn, action, "Internal Server Error")
}

func mergeSettings(base, override entity.Settings) entity.Settings {
	if override.Side != 0 {
		base.Side = override.Side
	}

	if override.FirstMark != entity.MarkEmpty {
		base.FirstMark = override.FirstMark
	}

	if override.FirstRole != "" {
		base.FirstRole = override.FirstRole
	}

	if override.SecondRole != "" {
		base.SecondRole = override.SecondRole
	}

	return base
}
