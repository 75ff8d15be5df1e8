package gametree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func TestNode_ChildFor(t *testing.T) {
	t.Run("Finds a direct child", func(t *testing.T) {
		// Given: a root with two children
		root := NewRoot(entity.MarkO)
		first := New(entity.Move{Row: 0, Col: 0}, entity.MarkX, 1)
		second := New(entity.Move{Row: 1, Col: 1}, entity.MarkX, 2)
		root.Attach(first)
		root.Attach(second)

		// When: looking up the second move
		found := root.ChildFor(entity.Move{Row: 1, Col: 1})

		// Then: the matching child is returned
		assert.Same(t, second, found)
	})

	t.Run("Does not search grandchildren", func(t *testing.T) {
		root := NewRoot(entity.MarkO)
		child := New(entity.Move{Row: 0, Col: 0}, entity.MarkX, 0)
		child.Attach(New(entity.Move{Row: 2, Col: 2}, entity.MarkO, 0))
		root.Attach(child)

		assert.Nil(t, root.ChildFor(entity.Move{Row: 2, Col: 2}))
	})

	t.Run("First match wins when a move was attached twice", func(t *testing.T) {
		root := NewRoot(entity.MarkO)
		first := New(entity.Move{Row: 0, Col: 1}, entity.MarkX, 5)
		root.Attach(first)
		root.Attach(New(entity.Move{Row: 0, Col: 1}, entity.MarkX, 7))

		assert.Same(t, first, root.ChildFor(entity.Move{Row: 0, Col: 1}))
		assert.Len(t, root.Children(), 2)
	})
}

func TestNode_Size(t *testing.T) {
	root := NewRoot(entity.MarkO)
	assert.False(t, root.Expanded())

	child := New(entity.Move{Row: 0, Col: 0}, entity.MarkX, 0)
	child.Attach(New(entity.Move{Row: 0, Col: 1}, entity.MarkO, 0))
	root.Attach(child)
	root.Attach(New(entity.Move{Row: 1, Col: 0}, entity.MarkX, 0))

	assert.True(t, root.Expanded())
	assert.Equal(t, 4, root.Size())
}

func TestNode_String(t *testing.T) {
	// Given: a small tree
	root := NewRoot(entity.MarkO)
	child := New(entity.Move{Row: 1, Col: 1}, entity.MarkX, 3)
	child.Attach(New(entity.Move{Row: 0, Col: 2}, entity.MarkO, -1))
	root.Attach(child)

	// When: it is rendered
	out := root.String()

	// Then: each level is indented by four spaces
	expected := "  `---[O -> (-)]: 0\n" +
		"      `---[X -> (11)]: 3\n" +
		"          `---[O -> (02)]: -1\n"
	require.Equal(t, expected, out)
}
