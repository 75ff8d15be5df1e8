package bot

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type Random struct {
	mark entity.Mark
	rand *rand.Rand
}

func NewRandom(mark entity.Mark, opts ...Option) *Random {
	return &Random{
		mark: mark,
		rand: applyOptions(opts).rand,
	}
}

func (that *Random) Mark() entity.Mark {
	return that.mark
}

func (that *Random) IsHuman() bool {
	return false
}

// Decide picks uniformly among the empty cells.
func (that *Random) Decide(board *entity.Board, _ *entity.Move) (entity.Mark, entity.Move, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return that.mark, entity.Move{}, apperror.ErrEmptyMoveSet
	}

	return that.mark, availableCells[that.intN(len(availableCells))], nil
}

func (that *Random) intN(n int) int {
	if that.rand == nil {
		return rand.IntN(n) //nolint: gosec // it's ok
	}

	return that.rand.IntN(n)
}
