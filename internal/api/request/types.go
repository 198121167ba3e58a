package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrInvalidID is returned when an identifier is not a positive integer
var ErrInvalidID = errors.New("id must be a positive integer")

// ID is a numeric identifier that may arrive as a JSON number or a numeric string
type ID int64

// UnmarshalJSON accepts 12 and "12"
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	parsed, err := ParseID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseID parses a path or body identifier
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidID
	}
	return ID(n), nil
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	PlayerType string `json:"playerType"`
}

// MoveRequest is the request body for drawing a line. Row and Col are pointers so a
// missing coordinate is told apart from zero.
type MoveRequest struct {
	PlayerID ID   `json:"playerId"`
	Row      *int `json:"row"`
	Col      *int `json:"col"`
}
