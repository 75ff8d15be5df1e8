package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

var errBadRequestBody = errors.New("invalid request body")

type turnRequest struct {
	Mark string      `json:"mark"`
	Move entity.Move `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleNewGame")

	settings := that.defaults
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequestBody, err))
		return
	}

	game, err := that.games.NewGame(r.Context(), settings)
	if err != nil {
		log.Error("failed to create game", "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) handleMakeTurn(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleMakeTurn")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, fmt.Errorf("%w: %w", errBadRequestBody, err))
		return
	}

	mark, err := entity.ParseMark(req.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.games.MakeTurn(r.Context(), r.PathValue("id"), mark, req.Move)
	if err != nil {
		log.Debug("turn rejected", "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleDescribeTree(w http.ResponseWriter, r *http.Request) {
	mark, err := entity.ParseMark(r.PathValue("mark"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	tree, err := that.games.DescribeTree(r.Context(), r.PathValue("id"), mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = io.WriteString(w, tree); err != nil {
		that.logger.Error("failed to write tree", "error", err)
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOccupiedCell),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	case errors.Is(err, errBadRequestBody), usecase.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
