package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

func TestParseMove(t *testing.T) {
	t.Run("Row digit then column digit", func(t *testing.T) {
		move, err := ParseMove("21")

		require.NoError(t, err)
		assert.Equal(t, Move{Row: 2, Col: 1}, move)
		assert.Equal(t, "21", move.String())
	})

	t.Run("Rejects anything but two digits", func(t *testing.T) {
		for _, s := range []string{"", "1", "123", "a1", "1-", " 1"} {
			_, err := ParseMove(s)
			assert.ErrorIs(t, err, apperror.ErrInvalidMove, s)
		}
	})
}

func TestMove_JSON(t *testing.T) {
	t.Run("Moves encode as strings", func(t *testing.T) {
		data, err := json.Marshal([]Move{{0, 9}, {3, 3}})

		require.NoError(t, err)
		assert.JSONEq(t, `["09","33"]`, string(data))
	})

	t.Run("Moves beyond one digit cannot be encoded", func(t *testing.T) {
		_, err := json.Marshal(Move{Row: 10, Col: 0})

		require.Error(t, err)
	})

	t.Run("Decoding validates the text", func(t *testing.T) {
		var move Move
		err := json.Unmarshal([]byte(`"7x"`), &move)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestParseMark(t *testing.T) {
	mark, err := ParseMark("x")
	require.NoError(t, err)
	assert.Equal(t, MarkX, mark)
	assert.Equal(t, MarkO, mark.Opponent())

	_, err = ParseMark("")
	require.ErrorIs(t, err, apperror.ErrInvalidMark)

	assert.Equal(t, MarkEmpty, MarkEmpty.Opponent())
}
