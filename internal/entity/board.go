package entity

// BoardSize is the side length of the board.
const BoardSize = 3

// WinLines holds the 8 winning lines as (row, col) triples: rows first, then
// columns, then the main and anti diagonal.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a row-major 3x3 grid. It is a value type: Place returns a copy.
type Board [BoardSize][BoardSize]Mark

func EmptyBoard() Board {
	return Board{}
}

// Place returns a new board with the cell set to mark. The caller must have
// checked the cell with InBounds and IsEmpty.
func (that Board) Place(row, col int, mark Mark) Board {
	that[row][col] = mark
	return that
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that Board) IsEmpty(row, col int) bool {
	return that[row][col] == NoMark
}

// IsFull - true when every cell is occupied.
func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == NoMark {
				return false
			}
		}
	}

	return true
}

// Winner - returns the owner of the first completed line or NoMark.
func (that Board) Winner() Mark {
	for _, line := range WinLines {
		a := that[line[0][0]][line[0][1]]
		b := that[line[1][0]][line[1][1]]
		c := that[line[2][0]][line[2][1]]

		if a != NoMark && a == b && b == c {
			return a
		}
	}

	return NoMark
}
