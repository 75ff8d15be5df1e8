// Package minimax scores decision trees with a depth-limited minimax search.
// MarkX maximizes, MarkO minimizes. There is no pruning and no positional
// heuristic: a position cut off by the depth budget scores the same as a tie.
package minimax

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/gametree"
)

// Maximizer is the mark whose wins score positive.
const Maximizer = entity.MarkX

// Evaluate scores a board by its winner, weighted by the number of empty
// cells so that faster wins and slower losses are preferred.
func Evaluate(board *entity.Board) int {
	switch board.Winner() {
	case entity.OutcomeX:
		return board.EmptyCount()
	case entity.OutcomeO:
		return -board.EmptyCount()
	default:
		return 0
	}
}

// Search fills node.Score and the scores of its subtree. board is the
// position node represents, toMove the mark to move there. Children are
// generated once per node and reused by later searches.
func Search(node *gametree.Node, board *entity.Board, depth int, toMove entity.Mark) error {
	if depth <= 0 || board.Winner().Finished() {
		node.Score = Evaluate(board)
		return nil
	}

	if !node.Expanded() {
		if err := expand(node, board); err != nil {
			return err
		}
	}

	for _, child := range node.Children() {
		next := board
		if !board.Played(*child.Move) {
			var err error
			if next, err = board.Simulate(child.Mark, *child.Move); err != nil {
				return fmt.Errorf("failed to simulate %s for %s: %w", child.Move, child.Mark, err)
			}
		}

		if err := Search(child, next, depth-1, toMove.Opponent()); err != nil {
			return err
		}
	}

	node.Score = aggregate(node.Children(), toMove)

	return nil
}

func expand(node *gametree.Node, board *entity.Board) error {
	mark := node.Mark.Opponent()

	for _, move := range board.EmptyCells() {
		next, err := board.Simulate(mark, move)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", move, err)
		}

		node.Attach(gametree.New(move, mark, Evaluate(next)))
	}

	return nil
}

func aggregate(children []*gametree.Node, toMove entity.Mark) int {
	score := children[0].Score
	for _, child := range children[1:] {
		if better(child.Score, score, toMove) {
			score = child.Score
		}
	}

	return score
}

func better(candidate, best int, mark entity.Mark) bool {
	if mark == Maximizer {
		return candidate > best
	}

	return candidate < best
}

// Best returns the highest scored child for the maximizer and the lowest for
// the minimizer. Ties go to the first child. Children whose cell is no longer
// empty on board are skipped. Nil means there is nothing to choose from.
func Best(node *gametree.Node, board *entity.Board, mark entity.Mark) *gametree.Node {
	var best *gametree.Node

	for _, child := range node.Children() {
		if child.Move == nil || board.Cell(*child.Move) != entity.MarkEmpty {
			continue
		}

		if best == nil || better(child.Score, best.Score, mark) {
			best = child
		}
	}

	return best
}
