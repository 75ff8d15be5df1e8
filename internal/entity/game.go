package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Role tags which kind of player occupies a side.
type Role string

const (
	RoleHuman       Role = "human"
	RoleRandom      Role = "random"
	RoleMinimaxEasy Role = "minimax-easy"
	RoleMinimaxHard Role = "minimax-hard"
)

func ParseRole(s string) (Role, error) {
	switch role := Role(s); role {
	case RoleHuman, RoleRandom, RoleMinimaxEasy, RoleMinimaxHard:
		return role, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownRole, s)
	}
}

func (that Role) IsHuman() bool {
	return that == RoleHuman
}

// Settings is everything needed to start a game. FirstRole plays FirstMark,
// SecondRole plays its opponent.
type Settings struct {
	Side       int  `json:"side"`
	FirstMark  Mark `json:"first_mark"`
	FirstRole  Role `json:"first_role"`
	SecondRole Role `json:"second_role"`
}

func (that Settings) Validate() error {
	if that.Side < MinBoardSide || that.Side > MaxBoardSide {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSide, that.Side)
	}

	if !that.FirstMark.Valid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, that.FirstMark)
	}

	if _, err := ParseRole(string(that.FirstRole)); err != nil {
		return err
	}

	if _, err := ParseRole(string(that.SecondRole)); err != nil {
		return err
	}

	return nil
}

type Game struct {
	ID     string        `json:"id"`
	Board  *Board        `json:"board"`
	Roles  map[Mark]Role `json:"roles"`
	Winner Outcome       `json:"winner"`
	Status string        `json:"status"`
}

func NewGame(id string, settings Settings) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	board, err := NewBoard(settings.Side, settings.FirstMark)
	if err != nil {
		return nil, err
	}

	return &Game{
		ID:    id,
		Board: board,
		Roles: map[Mark]Role{
			settings.FirstMark:            settings.FirstRole,
			settings.FirstMark.Opponent(): settings.SecondRole,
		},
		Status: StatusOngoing,
	}, nil
}

func (that *Game) RoleOf(mark Mark) Role {
	return that.Roles[mark]
}

// Turn returns the mark to move, or MarkEmpty once the game is finished.
func (that *Game) Turn() Mark {
	if that.IsFinished() {
		return MarkEmpty
	}

	return that.Board.Turn()
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Winner(); winner {
	// one player wins or tie
	case OutcomeX, OutcomeO, OutcomeTie:
		that.Winner = winner
		that.Status = StatusFinished
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}

// Clone returns a copy that shares nothing with the original.
func (that *Game) Clone() *Game {
	roles := make(map[Mark]Role, len(that.Roles))
	for mark, role := range that.Roles {
		roles[mark] = role
	}

	clone := *that
	clone.Roles = roles
	if that.Board != nil {
		clone.Board = that.Board.Clone()
	}

	return &clone
}
