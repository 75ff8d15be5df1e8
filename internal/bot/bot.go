// Package bot provides the player strategies: a human placeholder, a random
// mover and a minimax player that keeps its search tree between turns.
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

// Strategy decides the next move for one mark. prev is the opponent's
// previous move, nil when this strategy moves first.
type Strategy interface {
	Mark() entity.Mark
	IsHuman() bool
	Decide(board *entity.Board, prev *entity.Move) (entity.Mark, entity.Move, error)
}

type options struct {
	rand  *rand.Rand
	depth int
}

type Option func(*options)

// WithRand sets the source the random strategy draws from.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

// WithDepth fixes the minimax search depth instead of deriving it from the
// difficulty and the board side.
func WithDepth(depth int) Option {
	return func(o *options) {
		o.depth = depth
	}
}

// New returns the strategy for role playing mark.
func New(role entity.Role, mark entity.Mark, opts ...Option) (Strategy, error) {
	if !mark.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	switch role {
	case entity.RoleHuman:
		return NewHuman(mark), nil
	case entity.RoleRandom:
		return NewRandom(mark, opts...), nil
	case entity.RoleMinimaxEasy, entity.RoleMinimaxHard:
		difficulty, _ := minimax.DifficultyOf(role)
		return NewMinimax(mark, difficulty, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownRole, role)
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
