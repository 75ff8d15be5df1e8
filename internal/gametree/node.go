// Package gametree holds the decision tree the minimax player keeps between
// its turns. Every node owns its children exclusively.
package gametree

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Node is one hypothetical position, reached by Mark placing Move. The
// synthetic root has no move.
type Node struct {
	Move  *entity.Move
	Mark  entity.Mark
	Score int

	children []*Node
}

// NewRoot returns a move-less node. Its children are placed by mark's opponent.
func NewRoot(mark entity.Mark) *Node {
	return &Node{Mark: mark}
}

func New(move entity.Move, mark entity.Mark, score int) *Node {
	return &Node{
		Move:  &move,
		Mark:  mark,
		Score: score,
	}
}

// ChildFor looks at direct children only.
func (that *Node) ChildFor(move entity.Move) *Node {
	for _, child := range that.children {
		if child.Move != nil && *child.Move == move {
			return child
		}
	}

	return nil
}

// Attach appends child without checking for duplicates.
func (that *Node) Attach(child *Node) {
	that.children = append(that.children, child)
}

func (that *Node) Children() []*Node {
	return that.children
}

func (that *Node) Expanded() bool {
	return len(that.children) > 0
}

// Size counts the nodes of the subtree, this one included.
func (that *Node) Size() int {
	size := 1
	for _, child := range that.children {
		size += child.Size()
	}

	return size
}

func (that *Node) String() string {
	var sb strings.Builder
	_ = that.Render(&sb)

	return sb.String()
}

// Render writes one line per node, indented by depth.
func (that *Node) Render(w io.Writer) error {
	return that.render(w, 0)
}

func (that *Node) render(w io.Writer, depth int) error {
	move := "-"
	if that.Move != nil {
		move = that.Move.String()
	}

	mark := string(that.Mark)
	if mark == "" {
		mark = "?"
	}

	if _, err := fmt.Fprintf(w, "%s  `---[%s -> (%s)]: %d\n", strings.Repeat("    ", depth), mark, move, that.Score); err != nil {
		return fmt.Errorf("failed to render node: %w", err)
	}

	for _, child := range that.children {
		if err := child.render(w, depth+1); err != nil {
			return err
		}
	}

	return nil
}
