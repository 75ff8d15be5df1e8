package apperror

import "errors"

var (
	ErrOutOfRange   = errors.New("cell is out of range")
	ErrOccupiedCell = errors.New("cell is already occupied")
	ErrEmptyMoveSet = errors.New("no available moves")

	ErrInvalidMove      = errors.New("invalid move")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidBoardSide = errors.New("invalid board side")
	ErrUnknownRole      = errors.New("unknown player role")
	ErrHumanMove        = errors.New("human players move through the client")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameNotFound = errors.New("game not found")
)
