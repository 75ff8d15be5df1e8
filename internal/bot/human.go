package bot

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Human never decides on its own; its moves arrive from the client.
type Human struct {
	mark entity.Mark
}

func NewHuman(mark entity.Mark) *Human {
	return &Human{mark: mark}
}

func (that *Human) Mark() entity.Mark {
	return that.mark
}

func (that *Human) IsHuman() bool {
	return true
}

func (that *Human) Decide(*entity.Board, *entity.Move) (entity.Mark, entity.Move, error) {
	return that.mark, entity.Move{}, apperror.ErrHumanMove
}
