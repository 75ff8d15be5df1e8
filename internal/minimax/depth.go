package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type Difficulty string

const (
	Easy Difficulty = "easy"
	Hard Difficulty = "hard"
)

// Depth is the search budget: the board side for Easy, twice that for Hard.
func Depth(difficulty Difficulty, side int) (int, error) {
	switch difficulty {
	case Easy:
		return side, nil
	case Hard:
		return 2 * side, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", difficulty)
	}
}

// DifficultyOf maps a minimax role to its difficulty.
func DifficultyOf(role entity.Role) (Difficulty, bool) {
	switch role {
	case entity.RoleMinimaxEasy:
		return Easy, true
	case entity.RoleMinimaxHard:
		return Hard, true
	default:
		return "", false
	}
}
