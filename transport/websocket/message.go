package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// MovePayload is the only message clients send: x is the column and y the
// row, both zero based.
type MovePayload struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// decodeMove parses a move frame into board coordinates. Out-of-range
// coordinates are rejected, never clamped.
func decodeMove(data []byte) (int, int, error) {
	var payload MovePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperror.ErrMalformedMove, err)
	}

	if payload.X == nil || payload.Y == nil {
		return 0, 0, fmt.Errorf("%w: x and y are required", apperror.ErrMalformedMove)
	}

	row, col := *payload.Y, *payload.X
	if !entity.EmptyBoard().InBounds(row, col) {
		return 0, 0, fmt.Errorf("%w: cell x=%d y=%d is out of bounds", apperror.ErrMalformedMove, col, row)
	}

	return row, col, nil
}

func encodeError(err error) []byte {
	data, marshalErr := json.Marshal(ErrorPayload{Error: err.Error()})
	if marshalErr != nil {
		return []byte(`{"error":"internal error"}`)
	}
	return data
}
