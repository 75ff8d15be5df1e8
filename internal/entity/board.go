package entity

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	MinBoardSide = 1
	MaxBoardSide = 10
)

// Board is an NxN tic-tac-toe grid together with the list of empty cells in
// row-major order, the chronological move history and the mark to move next.
// The grid and the empty list are kept consistent by every mutation.
type Board struct {
	side    int
	cells   [][]Mark
	empty   []Move
	history []Move
	turn    Mark
}

func NewBoard(side int, first Mark) (*Board, error) {
	if side < MinBoardSide || side > MaxBoardSide {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSide, side)
	}

	if !first.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, first)
	}

	board := &Board{
		side:    side,
		cells:   make([][]Mark, side),
		empty:   make([]Move, 0, side*side),
		history: make([]Move, 0, side*side),
		turn:    first,
	}

	for row := range side {
		board.cells[row] = make([]Mark, side)
		for col := range side {
			board.empty = append(board.empty, Move{Row: row, Col: col})
		}
	}

	return board, nil
}

func (that *Board) Side() int {
	return that.side
}

// Turn returns the mark to move next.
func (that *Board) Turn() Mark {
	return that.turn
}

// Cell returns the mark at the given cell, MarkEmpty when it is outside the board.
func (that *Board) Cell(move Move) Mark {
	if !that.inRange(move) {
		return MarkEmpty
	}

	return that.cells[move.Row][move.Col]
}

func (that *Board) EmptyCells() []Move {
	return slices.Clone(that.empty)
}

func (that *Board) EmptyCount() int {
	return len(that.empty)
}

func (that *Board) History() []Move {
	return slices.Clone(that.history)
}

func (that *Board) LastMove() (Move, bool) {
	if len(that.history) == 0 {
		return Move{}, false
	}

	return that.history[len(that.history)-1], true
}

// Played reports whether the move is already part of the history.
func (that *Board) Played(move Move) bool {
	return slices.Contains(that.history, move)
}

// Apply places mark on move. The board is left untouched when an error is returned.
func (that *Board) Apply(mark Mark, move Move) error {
	if !that.inRange(move) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfRange, move)
	}

	idx := slices.Index(that.empty, move)
	if idx < 0 {
		return fmt.Errorf("%w: %s", apperror.ErrOccupiedCell, move)
	}

	that.cells[move.Row][move.Col] = mark
	that.empty = slices.Delete(that.empty, idx, idx+1)
	that.history = append(that.history, move)
	that.turn = that.turn.Opponent()

	return nil
}

// Simulate returns an independent copy of the board with the move applied.
func (that *Board) Simulate(mark Mark, move Move) (*Board, error) {
	next := that.Clone()
	if err := next.Apply(mark, move); err != nil {
		return nil, err
	}

	return next, nil
}

func (that *Board) Clone() *Board {
	cells := make([][]Mark, that.side)
	for row := range that.cells {
		cells[row] = slices.Clone(that.cells[row])
	}

	return &Board{
		side:    that.side,
		cells:   cells,
		empty:   slices.Clone(that.empty),
		history: slices.Clone(that.history),
		turn:    that.turn,
	}
}

// Winner checks rows, then columns, then the main diagonal, then the anti-diagonal.
func (that *Board) Winner() Outcome {
	side := that.side

	for row := range side {
		if mark := that.uniform(func(i int) Mark { return that.cells[row][i] }); mark != MarkEmpty {
			return outcomeOf(mark)
		}
	}

	for col := range side {
		if mark := that.uniform(func(i int) Mark { return that.cells[i][col] }); mark != MarkEmpty {
			return outcomeOf(mark)
		}
	}

	if mark := that.uniform(func(i int) Mark { return that.cells[i][i] }); mark != MarkEmpty {
		return outcomeOf(mark)
	}

	if mark := that.uniform(func(i int) Mark { return that.cells[i][side-i-1] }); mark != MarkEmpty {
		return outcomeOf(mark)
	}

	if len(that.empty) == 0 {
		return OutcomeTie
	}

	return OutcomeNone
}

// uniform returns the mark filling the whole line, or MarkEmpty.
func (that *Board) uniform(at func(i int) Mark) Mark {
	first := at(0)
	if first == MarkEmpty {
		return MarkEmpty
	}

	for i := 1; i < that.side; i++ {
		if at(i) != first {
			return MarkEmpty
		}
	}

	return first
}

func (that *Board) inRange(move Move) bool {
	return move.Row >= 0 && move.Row < that.side && move.Col >= 0 && move.Col < that.side
}

func (that *Board) String() string {
	var sb strings.Builder

	for _, row := range that.cells {
		for _, cell := range row {
			if cell == MarkEmpty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

type boardJSON struct {
	Side    int      `json:"side"`
	Turn    Mark     `json:"turn"`
	Cells   [][]Mark `json:"cells"`
	History []Move   `json:"history"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Side:    that.side,
		Turn:    that.turn,
		Cells:   that.cells,
		History: that.history,
	})
}

// UnmarshalJSON rebuilds the empty list from the grid and rejects documents
// where the grid, the history and the side disagree.
func (that *Board) UnmarshalJSON(data []byte) error {
	var doc boardJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := NewBoard(doc.Side, doc.Turn)
	if err != nil {
		return err
	}

	if len(doc.Cells) != doc.Side {
		return fmt.Errorf("%w: %d rows for side %d", apperror.ErrInvalidBoardSide, len(doc.Cells), doc.Side)
	}

	board.empty = board.empty[:0]
	for row := range doc.Cells {
		if len(doc.Cells[row]) != doc.Side {
			return fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidBoardSide, row, len(doc.Cells[row]))
		}

		for col, cell := range doc.Cells[row] {
			if cell != MarkEmpty && !cell.Valid() {
				return fmt.Errorf("%w: %q at %d%d", apperror.ErrInvalidMark, cell, row, col)
			}

			board.cells[row][col] = cell
			if cell == MarkEmpty {
				board.empty = append(board.empty, Move{Row: row, Col: col})
			}
		}
	}

	filled := doc.Side*doc.Side - len(board.empty)
	if len(doc.History) != filled {
		return fmt.Errorf("%w: %d history moves for %d filled cells", apperror.ErrInvalidMove, len(doc.History), filled)
	}

	seen := make(map[Move]struct{}, len(doc.History))
	for _, move := range doc.History {
		if board.Cell(move) == MarkEmpty {
			return fmt.Errorf("%w: history move %s points to an empty cell", apperror.ErrInvalidMove, move)
		}

		if _, ok := seen[move]; ok {
			return fmt.Errorf("%w: history move %s repeats", apperror.ErrInvalidMove, move)
		}

		seen[move] = struct{}{}
	}

	board.history = append(board.history, doc.History...)
	*that = *board

	return nil
}
