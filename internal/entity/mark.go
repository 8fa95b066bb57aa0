package entity

import "encoding/json"

// Mark identifies one of the two player slots. The zero value NoMark stands
// for an empty cell or an absent winner.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	NoMark Mark = ""
)

// Marks lists the slots in assignment order.
var Marks = [2]Mark{MarkX, MarkO}

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

// MarshalJSON encodes NoMark as null so clients see empty cells and a
// missing winner the same way.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that == NoMark {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = NoMark
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*that = Mark(value)
	return nil
}
