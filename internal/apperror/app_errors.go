package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrUnknownPlayer = errors.New("unknown player mark")
	ErrSessionFull   = errors.New("session is full")
	ErrMalformedMove = errors.New("malformed move")
)
