package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoard_Winner(t *testing.T) {
	t.Run("Returns the mark for every winning line", func(t *testing.T) {
		for _, line := range WinLines {
			for _, mark := range Marks {
				// Given: a board where one line is completed by mark
				board := EmptyBoard()
				for _, cell := range line {
					board = board.Place(cell[0], cell[1], mark)
				}

				// When: evaluating the winner
				winner := board.Winner()

				// Then: the line owner wins
				assert.Equal(t, mark, winner, "line %v", line)
			}
		}
	})

	t.Run("Returns NoMark when no line is complete", func(t *testing.T) {
		// Given: a board that is still ongoing
		board := Board{
			{MarkX, MarkO, NoMark},
			{NoMark, MarkX, NoMark},
			{NoMark, NoMark, MarkO},
		}

		// When: evaluating the winner
		winner := board.Winner()

		// Then: nobody has won
		assert.Equal(t, NoMark, winner)
	})

	t.Run("Returns NoMark on a drawn full board", func(t *testing.T) {
		// Given: a full board without any completed line
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, MarkO},
		}

		// Then: there is no winner and the board is full
		assert.Equal(t, NoMark, board.Winner())
		assert.True(t, board.IsFull())
	})

	t.Run("Line that mixes marks is not a win", func(t *testing.T) {
		board := Board{
			{MarkX, MarkX, MarkO},
		}

		assert.Equal(t, NoMark, board.Winner())
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		assert.False(t, EmptyBoard().IsFull())
	})

	t.Run("Board with one free cell is not full", func(t *testing.T) {
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, NoMark},
		}

		assert.False(t, board.IsFull())
	})
}

func TestBoard_Place(t *testing.T) {
	// Given: an empty board
	board := EmptyBoard()

	// When: placing a mark
	next := board.Place(1, 2, MarkO)

	// Then: the new board has the mark and the receiver is untouched
	assert.Equal(t, MarkO, next[1][2])
	assert.True(t, board.IsEmpty(1, 2))
	assert.False(t, next.IsEmpty(1, 2))
}

func TestBoard_InBounds(t *testing.T) {
	board := EmptyBoard()

	assert.True(t, board.InBounds(0, 0))
	assert.True(t, board.InBounds(2, 2))
	assert.False(t, board.InBounds(-1, 0))
	assert.False(t, board.InBounds(0, 3))
	assert.False(t, board.InBounds(3, 1))
}
