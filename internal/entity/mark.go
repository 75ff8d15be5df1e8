package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Mark is the content of a board cell. MarkX is the maximizing side.
type Mark string

const (
	MarkEmpty Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

func ParseMark(s string) (Mark, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(MarkX):
		return MarkX, nil
	case string(MarkO):
		return MarkO, nil
	default:
		return MarkEmpty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

func (that Mark) Valid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark. The empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

// Outcome is the result of Board.Winner.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeTie  Outcome = "-"
)

func outcomeOf(mark Mark) Outcome {
	if mark == MarkX {
		return OutcomeX
	}
	return OutcomeO
}

func (that Outcome) Finished() bool {
	return that != OutcomeNone
}

// Mark returns the winning mark, or MarkEmpty for a tie or an ongoing game.
func (that Outcome) Mark() Mark {
	switch that {
	case OutcomeX:
		return MarkX
	case OutcomeO:
		return MarkO
	default:
		return MarkEmpty
	}
}
