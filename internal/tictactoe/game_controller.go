package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/bot"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

var ErrMissingStrategy = errors.New("no strategy for mark")

// MakeTurn applies mark's move to the game and refreshes its status.
func MakeTurn(gameInstance *entity.Game, mark entity.Mark, move entity.Move) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if gameInstance.Board.Turn() != mark {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.Board.Apply(mark, move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.UpdateGameState()

	return nil
}

// GameController drives one game: humans submit moves through Play, bots
// answer through PlayBots.
type GameController struct {
	game       *entity.Game
	strategies map[entity.Mark]bot.Strategy
}

func NewGameController(game *entity.Game, opts ...bot.Option) (*GameController, error) {
	strategies := make(map[entity.Mark]bot.Strategy, 2)

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		strategy, err := bot.New(game.RoleOf(mark), mark, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create player %s: %w", mark, err)
		}

		strategies[mark] = strategy
	}

	return &GameController{
		game:       game,
		strategies: strategies,
	}, nil
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

func (that *GameController) Strategy(mark entity.Mark) (bot.Strategy, error) {
	strategy, ok := that.strategies[mark]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingStrategy, mark)
	}

	return strategy, nil
}

// Play applies a human move. Bots are not asked to reply.
func (that *GameController) Play(mark entity.Mark, move entity.Move) error {
	if err := that.game.ConfirmOngoingState(); err != nil {
		return err
	}

	strategy, err := that.Strategy(mark)
	if err != nil {
		return err
	}

	if !strategy.IsHuman() {
		return fmt.Errorf("%w: %s is played by a bot", apperror.ErrNotYourTurn, mark)
	}

	return MakeTurn(that.game, mark, move)
}

// PlayBots lets bots move until the game ends or a human is to move. It
// returns the moves made, in order.
func (that *GameController) PlayBots() ([]entity.Move, error) {
	var moves []entity.Move

	for that.game.IsOngoing() {
		strategy, err := that.Strategy(that.game.Board.Turn())
		if err != nil {
			return moves, err
		}

		if strategy.IsHuman() {
			break
		}

		var prev *entity.Move
		if last, ok := that.game.Board.LastMove(); ok {
			prev = &last
		}

		mark, move, err := strategy.Decide(that.game.Board, prev)
		if err != nil {
			return moves, fmt.Errorf("bot %s failed to decide: %w", strategy.Mark(), err)
		}

		if err = MakeTurn(that.game, mark, move); err != nil {
			return moves, fmt.Errorf("bot %s failed to make turn: %w", mark, err)
		}

		moves = append(moves, move)
	}

	return moves, nil
}
