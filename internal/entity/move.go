package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Move addresses a cell by zero-based row and column. Its text form is two
// decimal digits, row first, so only boards up to 10x10 can be addressed.
type Move struct {
	Row int
	Col int
}

func ParseMove(s string) (Move, error) {
	if len(s) != 2 || !isDigit(s[0]) || !isDigit(s[1]) {
		return Move{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, s)
	}

	return Move{Row: int(s[0] - '0'), Col: int(s[1] - '0')}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (that Move) String() string {
	return fmt.Sprintf("%d%d", that.Row, that.Col)
}

func (that Move) MarshalText() ([]byte, error) {
	if that.Row < 0 || that.Row > 9 || that.Col < 0 || that.Col > 9 {
		return nil, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidMove, that.Row, that.Col)
	}

	return []byte(that.String()), nil
}

func (that *Move) UnmarshalText(text []byte) error {
	move, err := ParseMove(string(text))
	if err != nil {
		return err
	}

	*that = move

	return nil
}
