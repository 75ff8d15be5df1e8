package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/gametree"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

// Minimax owns one decision tree for the whole game. After a decision the
// root still points at the position before its own move; the next call walks
// down through that move and the opponent's reply, so the searched subtree is
// reused and the siblings are dropped.
type Minimax struct {
	mark       entity.Mark
	difficulty minimax.Difficulty
	depth      int

	root   *gametree.Node
	played *entity.Move
}

func NewMinimax(mark entity.Mark, difficulty minimax.Difficulty, opts ...Option) *Minimax {
	return &Minimax{
		mark:       mark,
		difficulty: difficulty,
		depth:      applyOptions(opts).depth,
		root:       gametree.NewRoot(mark.Opponent()),
	}
}

func (that *Minimax) Mark() entity.Mark {
	return that.mark
}

func (that *Minimax) IsHuman() bool {
	return false
}

// Tree returns the current root of the decision tree.
func (that *Minimax) Tree() *gametree.Node {
	return that.root
}

func (that *Minimax) Decide(board *entity.Board, prev *entity.Move) (entity.Mark, entity.Move, error) {
	if prev == nil {
		if !that.root.Expanded() {
			for _, move := range board.EmptyCells() {
				that.root.Attach(gametree.New(move, that.mark, 0))
			}
		}
	} else {
		that.advance(*prev)
	}

	depth, err := that.searchDepth(board.Side())
	if err != nil {
		return that.mark, entity.Move{}, err
	}

	if err = minimax.Search(that.root, board, depth, that.mark); err != nil {
		return that.mark, entity.Move{}, fmt.Errorf("search failed: %w", err)
	}

	best := minimax.Best(that.root, board, that.mark)
	if best == nil {
		return that.mark, entity.Move{}, apperror.ErrEmptyMoveSet
	}

	move := *best.Move
	that.played = &move

	return that.mark, move, nil
}

// advance moves the root to the node of the opponent's move prev, creating a
// fresh node when the tree never considered it.
func (that *Minimax) advance(prev entity.Move) {
	node := that.root
	if that.played != nil {
		if own := node.ChildFor(*that.played); own != nil {
			node = own
		}
	}

	if next := node.ChildFor(prev); next != nil && next.Mark == that.mark.Opponent() {
		that.root = next
		return
	}

	that.root = gametree.New(prev, that.mark.Opponent(), 0)
}

func (that *Minimax) searchDepth(side int) (int, error) {
	if that.depth > 0 {
		return that.depth, nil
	}

	depth, err := minimax.Depth(that.difficulty, side)
	if err != nil {
		return 0, fmt.Errorf("failed to pick search depth: %w", err)
	}

	return depth, nil
}
