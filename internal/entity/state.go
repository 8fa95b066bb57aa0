package entity

const (
	StatusWaiting  = "waiting"
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// SessionState is an immutable snapshot of the session. Transition methods
// return a new value and leave the receiver untouched.
type SessionState struct {
	Board            Board  `json:"field"`
	PlayerAtTurn     Mark   `json:"playerAtTurn"`
	ConnectedPlayers []Mark `json:"connectedPlayers"`
	WinningPlayer    Mark   `json:"winningPlayer"`
	IsBoardFull      bool   `json:"isBoardFull"`
}

// NewSessionState - empty board, X to move, nobody connected.
func NewSessionState() SessionState {
	return SessionState{
		Board:            EmptyBoard(),
		PlayerAtTurn:     MarkX,
		ConnectedPlayers: []Mark{},
	}
}

func (that SessionState) IsConnected(mark Mark) bool {
	return containsMark(that.ConnectedPlayers, mark)
}

// IsResolved - the round has a winner or no free cell left.
func (that SessionState) IsResolved() bool {
	return that.WinningPlayer != NoMark || that.IsBoardFull
}

func (that SessionState) Status() string {
	switch {
	case that.IsResolved():
		return StatusFinished
	case len(that.ConnectedPlayers) < len(Marks):
		return StatusWaiting
	default:
		return StatusOngoing
	}
}

// WithPlayer returns a copy with mark added to the connected set.
func (that SessionState) WithPlayer(mark Mark) SessionState {
	that.ConnectedPlayers = connectedSet(that.ConnectedPlayers, mark, true)
	return that
}

// WithoutPlayer returns a copy with mark removed from the connected set.
func (that SessionState) WithoutPlayer(mark Mark) SessionState {
	that.ConnectedPlayers = connectedSet(that.ConnectedPlayers, mark, false)
	return that
}

// WithMove applies an already validated move: places the mark, passes the
// turn and records the round outcome.
func (that SessionState) WithMove(mark Mark, row, col int) SessionState {
	that.Board = that.Board.Place(row, col, mark)
	that.PlayerAtTurn = mark.Opponent()
	that.IsBoardFull = that.Board.IsFull()
	that.WinningPlayer = that.Board.Winner()
	that.ConnectedPlayers = connectedSet(that.ConnectedPlayers, NoMark, false)

	return that
}

// Reset starts a new round. Connected players keep their seats.
func (that SessionState) Reset() SessionState {
	return SessionState{
		Board:            EmptyBoard(),
		PlayerAtTurn:     MarkX,
		ConnectedPlayers: connectedSet(that.ConnectedPlayers, NoMark, false),
	}
}

// connectedSet rebuilds the slot list in X, O order so snapshots never share
// a backing array.
func connectedSet(current []Mark, mark Mark, present bool) []Mark {
	result := make([]Mark, 0, len(Marks))

	for _, slot := range Marks {
		connected := slot != mark && containsMark(current, slot)
		if slot == mark {
			connected = present
		}

		if connected {
			result = append(result, slot)
		}
	}

	return result
}

func containsMark(marks []Mark, mark Mark) bool {
	for _, m := range marks {
		if m == mark {
			return true
		}
	}
	return false
}
