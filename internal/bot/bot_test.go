package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func newBoard(t *testing.T, side int, first entity.Mark) *entity.Board {
	t.Helper()

	board, err := entity.NewBoard(side, first)
	require.NoError(t, err)

	return board
}

// play runs a whole game between two strategies and returns the outcome.
func play(t *testing.T, board *entity.Board, players map[entity.Mark]Strategy) entity.Outcome {
	t.Helper()

	var prev *entity.Move
	for !board.Winner().Finished() {
		mark, move, err := players[board.Turn()].Decide(board, prev)
		require.NoError(t, err)
		require.NoError(t, board.Apply(mark, move), "board:\n%s", board)

		prev = &move
	}

	return board.Winner()
}

func TestNew(t *testing.T) {
	t.Run("Maps each role to its strategy", func(t *testing.T) {
		tests := []struct {
			role  entity.Role
			human bool
			want  any
		}{
			{role: entity.RoleHuman, human: true, want: &Human{}},
			{role: entity.RoleRandom, want: &Random{}},
			{role: entity.RoleMinimaxEasy, want: &Minimax{}},
			{role: entity.RoleMinimaxHard, want: &Minimax{}},
		}

		for _, tt := range tests {
			strategy, err := New(tt.role, entity.MarkO)
			require.NoError(t, err)

			assert.IsType(t, tt.want, strategy)
			assert.Equal(t, tt.human, strategy.IsHuman())
			assert.Equal(t, entity.MarkO, strategy.Mark())
		}
	})

	t.Run("Rejects unknown roles", func(t *testing.T) {
		_, err := New("oracle", entity.MarkX)
		require.ErrorIs(t, err, apperror.ErrUnknownRole)
	})

	t.Run("Rejects the empty mark", func(t *testing.T) {
		_, err := New(entity.RoleRandom, entity.MarkEmpty)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestHuman_Decide(t *testing.T) {
	_, _, err := NewHuman(entity.MarkX).Decide(newBoard(t, 3, entity.MarkX), nil)

	require.ErrorIs(t, err, apperror.ErrHumanMove)
}

func TestRandom_Decide(t *testing.T) {
	t.Run("Always picks an empty cell", func(t *testing.T) {
		// Given: a board with a few taken cells
		board := newBoard(t, 3, entity.MarkX)
		require.NoError(t, board.Apply(entity.MarkX, entity.Move{Row: 1, Col: 1}))
		require.NoError(t, board.Apply(entity.MarkO, entity.Move{Row: 0, Col: 0}))
		random := NewRandom(entity.MarkX, WithRand(rand.New(rand.NewPCG(1, 2))))

		for range 50 {
			// When: the random player decides
			mark, move, err := random.Decide(board, nil)
			require.NoError(t, err)

			// Then: its mark and an empty cell are returned
			assert.Equal(t, entity.MarkX, mark)
			assert.Contains(t, board.EmptyCells(), move)
		}
	})

	t.Run("Uses the default source when none is given", func(t *testing.T) {
		board := newBoard(t, 2, entity.MarkX)

		_, move, err := NewRandom(entity.MarkX).Decide(board, nil)

		require.NoError(t, err)
		assert.Contains(t, board.EmptyCells(), move)
	})

	t.Run("Error when the board is full", func(t *testing.T) {
		board := newBoard(t, 1, entity.MarkX)
		require.NoError(t, board.Apply(entity.MarkX, entity.Move{}))

		_, _, err := NewRandom(entity.MarkO).Decide(board, nil)

		require.ErrorIs(t, err, apperror.ErrEmptyMoveSet)
	})
}

func TestMinimax_Decide(t *testing.T) {
	t.Run("Takes the winning cell", func(t *testing.T) {
		// Given: X to move with one cell completing the main diagonal
		board := newBoard(t, 3, entity.MarkO)
		for _, placement := range []struct {
			mark entity.Mark
			move entity.Move
		}{
			{entity.MarkO, entity.Move{Row: 0, Col: 1}},
			{entity.MarkX, entity.Move{Row: 0, Col: 0}},
			{entity.MarkO, entity.Move{Row: 0, Col: 2}},
			{entity.MarkX, entity.Move{Row: 1, Col: 1}},
			{entity.MarkO, entity.Move{Row: 1, Col: 0}},
			{entity.MarkX, entity.Move{Row: 1, Col: 2}},
			{entity.MarkO, entity.Move{Row: 2, Col: 1}},
		} {
			require.NoError(t, board.Apply(placement.mark, placement.move))
		}
		last, _ := board.LastMove()
		player := NewMinimax(entity.MarkX, "hard")

		// When: the minimax player decides
		mark, move, err := player.Decide(board, &last)
		require.NoError(t, err)

		// Then: it completes the diagonal
		assert.Equal(t, entity.MarkX, mark)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
	})

	t.Run("Root stays on the position before its own move", func(t *testing.T) {
		board := newBoard(t, 3, entity.MarkX)
		player := NewMinimax(entity.MarkX, "easy")

		_, _, err := player.Decide(board, nil)
		require.NoError(t, err)

		assert.Nil(t, player.Tree().Move)
		assert.Len(t, player.Tree().Children(), 9)
	})

	t.Run("Reuses the subtree of the opponent's reply", func(t *testing.T) {
		// Given: X has moved and O replied with a move the tree already covers
		board := newBoard(t, 3, entity.MarkX)
		player := NewMinimax(entity.MarkX, "hard")

		_, own, err := player.Decide(board, nil)
		require.NoError(t, err)
		require.NoError(t, board.Apply(entity.MarkX, own))

		reply := board.EmptyCells()[0]
		require.NoError(t, board.Apply(entity.MarkO, reply))
		expected := player.Tree().ChildFor(own).ChildFor(reply)
		require.NotNil(t, expected)

		// When: X decides again
		_, next, err := player.Decide(board, &reply)
		require.NoError(t, err)

		// Then: the root is the retained node and the answer is legal
		assert.Same(t, expected, player.Tree())
		assert.Equal(t, entity.MarkO, player.Tree().Mark)
		assert.Contains(t, board.EmptyCells(), next)
	})

	t.Run("Starts a fresh node for an unknown reply", func(t *testing.T) {
		// Given: O plays second and has no tree yet
		board := newBoard(t, 3, entity.MarkX)
		opening := entity.Move{Row: 0, Col: 0}
		require.NoError(t, board.Apply(entity.MarkX, opening))
		player := NewMinimax(entity.MarkO, "easy")

		// When: O decides
		mark, move, err := player.Decide(board, &opening)
		require.NoError(t, err)

		// Then: the root is a node for X's opening and O answers on an empty cell
		assert.Equal(t, entity.MarkO, mark)
		require.NotNil(t, player.Tree().Move)
		assert.Equal(t, opening, *player.Tree().Move)
		assert.Equal(t, entity.MarkX, player.Tree().Mark)
		assert.Len(t, player.Tree().Children(), 8)
		assert.Contains(t, board.EmptyCells(), move)
	})

	t.Run("Same board gives the same move", func(t *testing.T) {
		board := newBoard(t, 3, entity.MarkX)
		require.NoError(t, board.Apply(entity.MarkX, entity.Move{Row: 0, Col: 0}))
		prev := entity.Move{Row: 0, Col: 0}

		first := NewMinimax(entity.MarkO, "hard")
		second := NewMinimax(entity.MarkO, "hard")

		_, a, err := first.Decide(board, &prev)
		require.NoError(t, err)
		_, b, err := second.Decide(board, &prev)
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Equal(t, first.Tree().String(), second.Tree().String())
	})

	t.Run("Error on unknown difficulty", func(t *testing.T) {
		_, _, err := NewMinimax(entity.MarkX, "impossible").Decide(newBoard(t, 3, entity.MarkX), nil)

		require.Error(t, err)
	})
}

func TestMinimax_NeverLosesToRandom(t *testing.T) {
	if testing.Short() {
		t.Skip("plays full-depth games")
	}

	// Evaluate scores a win by the empty cells left, so a win that fills the
	// board scores 0 like a tie. A second-moving minimax can pick the tie over
	// that win and then lose to random play, so only X moving first is checked.
	rnd := rand.New(rand.NewPCG(7, 11))

	for game := range 5 {
		// Given: full-depth minimax as X moving first against a random O
		board := newBoard(t, 3, entity.MarkX)
		players := map[entity.Mark]Strategy{
			entity.MarkX: NewMinimax(entity.MarkX, "hard", WithDepth(9)),
			entity.MarkO: NewRandom(entity.MarkO, WithRand(rnd)),
		}

		// When: the game is played out
		outcome := play(t, board, players)

		// Then: O never wins
		assert.NotEqual(t, entity.OutcomeO, outcome, "game %d:\n%s", game, board)
	}
}

func TestMinimax_PlaysLegalMovesOnLargerBoards(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 5))

	board := newBoard(t, 4, entity.MarkO)
	players := map[entity.Mark]Strategy{
		entity.MarkX: NewMinimax(entity.MarkX, "easy", WithDepth(2)),
		entity.MarkO: NewRandom(entity.MarkO, WithRand(rnd)),
	}

	outcome := play(t, board, players)

	assert.True(t, outcome.Finished())
}
