package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionState(t *testing.T) {
	// When: creating the initial state
	state := NewSessionState()

	// Then: the board is empty, X moves first and nobody is connected
	assert.Equal(t, EmptyBoard(), state.Board)
	assert.Equal(t, MarkX, state.PlayerAtTurn)
	assert.Empty(t, state.ConnectedPlayers)
	assert.Equal(t, NoMark, state.WinningPlayer)
	assert.False(t, state.IsBoardFull)
	assert.Equal(t, StatusWaiting, state.Status())
}

func TestSessionState_Players(t *testing.T) {
	t.Run("Connected players are kept in X, O order", func(t *testing.T) {
		// Given: O joins before X
		state := NewSessionState().WithPlayer(MarkO).WithPlayer(MarkX)

		// Then: the slot list is ordered and the session is ongoing
		assert.Equal(t, []Mark{MarkX, MarkO}, state.ConnectedPlayers)
		assert.Equal(t, StatusOngoing, state.Status())
	})

	t.Run("Adding a connected player twice keeps one entry", func(t *testing.T) {
		state := NewSessionState().WithPlayer(MarkX).WithPlayer(MarkX)

		assert.Equal(t, []Mark{MarkX}, state.ConnectedPlayers)
	})

	t.Run("Transitions never mutate the previous snapshot", func(t *testing.T) {
		// Given: a snapshot with both players
		before := NewSessionState().WithPlayer(MarkX).WithPlayer(MarkO)

		// When: one player leaves
		after := before.WithoutPlayer(MarkX)

		// Then: only the new snapshot changed
		assert.Equal(t, []Mark{MarkX, MarkO}, before.ConnectedPlayers)
		assert.Equal(t, []Mark{MarkO}, after.ConnectedPlayers)
		assert.True(t, before.IsConnected(MarkX))
		assert.False(t, after.IsConnected(MarkX))
	})
}

func TestSessionState_WithMove(t *testing.T) {
	t.Run("Places the mark and passes the turn", func(t *testing.T) {
		state := NewSessionState().WithMove(MarkX, 1, 1)

		assert.Equal(t, MarkX, state.Board[1][1])
		assert.Equal(t, MarkO, state.PlayerAtTurn)
		assert.Equal(t, NoMark, state.WinningPlayer)
		assert.False(t, state.IsBoardFull)
	})

	t.Run("Records the winner of a completed line", func(t *testing.T) {
		// Given: X holds two cells of the top row
		state := NewSessionState()
		state.Board = Board{{MarkX, MarkX, NoMark}}

		// When: X completes the row
		state = state.WithMove(MarkX, 0, 2)

		// Then: X wins and the round is finished
		assert.Equal(t, MarkX, state.WinningPlayer)
		assert.True(t, state.IsResolved())
		assert.Equal(t, StatusFinished, state.Status())
	})

	t.Run("Win on the last cell sets both winner and full flag", func(t *testing.T) {
		state := NewSessionState()
		state.Board = Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, NoMark},
		}

		state = state.WithMove(MarkX, 2, 2)

		assert.Equal(t, MarkX, state.WinningPlayer)
		assert.True(t, state.IsBoardFull)
	})
}

func TestSessionState_Reset(t *testing.T) {
	// Given: a finished round with both players seated
	state := NewSessionState().WithPlayer(MarkX).WithPlayer(MarkO)
	state.Board = Board{{MarkO, MarkO, MarkO}, {MarkX, MarkX, NoMark}, {MarkX, NoMark, NoMark}}
	state.WinningPlayer = MarkO
	state.PlayerAtTurn = MarkX

	// When: resetting
	reset := state.Reset()

	// Then: the round restarts and the seats are kept
	assert.Equal(t, EmptyBoard(), reset.Board)
	assert.Equal(t, MarkX, reset.PlayerAtTurn)
	assert.Equal(t, NoMark, reset.WinningPlayer)
	assert.False(t, reset.IsBoardFull)
	assert.Equal(t, []Mark{MarkX, MarkO}, reset.ConnectedPlayers)
}

func TestSessionState_MarshalJSON(t *testing.T) {
	// Given: X played the centre and only X is connected
	state := NewSessionState().WithPlayer(MarkX).WithMove(MarkX, 1, 1)

	// When: encoding the snapshot
	data, err := json.Marshal(state)
	require.NoError(t, err)

	// Then: empty cells and the absent winner are null
	expected := `{
		"field": [[null,null,null],[null,"X",null],[null,null,null]],
		"playerAtTurn": "O",
		"connectedPlayers": ["X"],
		"winningPlayer": null,
		"isBoardFull": false
	}`
	assert.JSONEq(t, expected, string(data))
}

func TestSessionState_UnmarshalJSON(t *testing.T) {
	// Given: a wire snapshot
	data := []byte(`{"field":[["O",null,null],[null,null,null],[null,null,null]],"playerAtTurn":"X",` +
		`"connectedPlayers":["X","O"],"winningPlayer":null,"isBoardFull":false}`)

	// When: decoding it
	var state SessionState
	require.NoError(t, json.Unmarshal(data, &state))

	// Then: null cells become NoMark
	assert.Equal(t, MarkO, state.Board[0][0])
	assert.Equal(t, NoMark, state.Board[2][2])
	assert.Equal(t, NoMark, state.WinningPlayer)
	assert.Equal(t, []Mark{MarkX, MarkO}, state.ConnectedPlayers)
}
