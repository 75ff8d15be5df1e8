package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/bot"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoDecisionTree = errors.New("player has no decision tree")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// session keeps the live strategies of a game, so a minimax player's tree
// survives between requests. A closed session no longer matches storage and
// must not be used; callers fetch a new one.
type session struct {
	mu         sync.Mutex
	controller *tictactoe.GameController
	closed     bool
}

type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	botOptions []bot.Option

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, botOptions ...bot.Option) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),

		gameRepo:   gameRepo,
		botOptions: botOptions,
		sessions:   make(map[string]*session),
	}
}

// NewGame creates a game and lets bots move until a human is to play. The
// game becomes reachable only once it is stored.
func (that *GameManager) NewGame(ctx context.Context, settings entity.Settings) (*entity.Game, error) {
	log := that.logger.With("method", "NewGame")

	game, err := entity.NewGame(uuid.NewString(), settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	controller, err := tictactoe.NewGameController(game, that.botOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	moves, err := controller.PlayBots()
	if err != nil {
		return nil, fmt.Errorf("failed to play bots: %w", err)
	}

	if err = that.saveGame(ctx, game); err != nil {
		return nil, err
	}

	log.Info("game created", "gameID", game.ID, "side", settings.Side, "botMoves", len(moves))

	if game.IsFinished() {
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
		return game.Clone(), nil
	}

	that.mu.Lock()
	that.sessions[game.ID] = &session{controller: controller}
	that.mu.Unlock()

	return game.Clone(), nil
}

// MakeTurn applies a human move and the bots' replies. When the result cannot
// be stored the session is discarded, so the next request starts again from
// the stored game.
func (that *GameManager) MakeTurn(ctx context.Context, gameID string, mark entity.Mark, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	sess, err := that.lockSession(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer sess.mu.Unlock()

	game := sess.controller.Game()
	if err = sess.controller.Play(mark, move); err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	moves, err := sess.controller.PlayBots()
	if err != nil {
		log.Error("bots failed to reply", "error", err)
		that.closeSession(gameID, sess)
		return nil, fmt.Errorf("failed to play bots: %w", err)
	}

	if err = that.saveGame(ctx, game); err != nil {
		log.Error("turn not stored, session discarded", "error", err)
		that.closeSession(gameID, sess)
		return nil, err
	}

	log.Debug("turn made", "mark", mark, "move", move, "botMoves", len(moves))

	if game.IsFinished() {
		that.closeSession(gameID, sess)
		that.logger.Info("game finished", "gameID", gameID, "winner", game.Winner)
	}

	return game.Clone(), nil
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	that.mu.Lock()
	sess, ok := that.sessions[gameID]
	that.mu.Unlock()

	if ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		if !sess.closed {
			return sess.controller.Game().Clone(), nil
		}
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	that.mu.Lock()
	sess, ok := that.sessions[gameID]
	that.mu.Unlock()

	if ok {
		sess.mu.Lock()
		that.closeSession(gameID, sess)
		sess.mu.Unlock()
	}

	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "gameID", gameID)

	return nil
}

// DescribeTree renders the decision tree of the minimax player holding mark.
func (that *GameManager) DescribeTree(ctx context.Context, gameID string, mark entity.Mark) (string, error) {
	sess, err := that.lockSession(ctx, gameID)
	if err != nil {
		return "", err
	}
	defer sess.mu.Unlock()

	strategy, err := sess.controller.Strategy(mark)
	if err != nil {
		return "", err
	}

	player, ok := strategy.(*bot.Minimax)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoDecisionTree, mark)
	}

	return player.Tree().String(), nil
}

// lockSession returns the locked live session of a game. Sessions closed
// while the caller waited for the lock are skipped.
func (that *GameManager) lockSession(ctx context.Context, gameID string) (*session, error) {
	for {
		sess, err := that.getSession(ctx, gameID)
		if err != nil {
			return nil, err
		}

		sess.mu.Lock()
		if !sess.closed {
			return sess, nil
		}
		sess.mu.Unlock()
	}
}

// getSession returns the live session of a game, restoring it from storage
// with fresh strategies when this process has none.
func (that *GameManager) getSession(ctx context.Context, gameID string) (*session, error) {
	that.mu.Lock()
	sess, ok := that.sessions[gameID]
	that.mu.Unlock()

	if ok {
		return sess, nil
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	controller, err := tictactoe.NewGameController(game, that.botOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game controller: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.sessions[gameID]; ok {
		return existing, nil
	}

	sess = &session{controller: controller}
	if game.IsOngoing() {
		that.sessions[gameID] = sess
	}

	return sess, nil
}

func (that *GameManager) saveGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// closeSession marks sess unusable and unregisters it. The caller holds sess.mu.
func (that *GameManager) closeSession(gameID string, sess *session) {
	sess.closed = true

	that.mu.Lock()
	if that.sessions[gameID] == sess {
		delete(that.sessions, gameID)
	}
	that.mu.Unlock()
}

// IsClientError reports whether err is caused by the request rather than the server.
func IsClientError(err error) bool {
	for _, target := range []error{
		apperror.ErrOutOfRange,
		apperror.ErrOccupiedCell,
		apperror.ErrInvalidMove,
		apperror.ErrInvalidMark,
		apperror.ErrInvalidBoardSide,
		apperror.ErrUnknownRole,
		apperror.ErrNotYourTurn,
		apperror.ErrGameFinished,
		ErrNoDecisionTree,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
