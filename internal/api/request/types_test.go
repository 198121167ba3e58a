package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRequestAcceptsNumericAndStringIDs(t *testing.T) {
	for _, body := range []string{
		`{"playerId": 7, "row": 0, "col": 3}`,
		`{"playerId": "7", "row": 0, "col": 3}`,
	} {
		var req MoveRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, ID(7), req.PlayerID)
		require.NotNil(t, req.Row)
		assert.Equal(t, 0, *req.Row)
		assert.Equal(t, 3, *req.Col)
	}
}

func TestMoveRequestRejectsBadIDs(t *testing.T) {
	for _, body := range []string{
		`{"playerId": "abc"}`,
		`{"playerId": -1}`,
		`{"playerId": 0}`,
		`{"playerId": 1.5}`,
	} {
		var req MoveRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestMissingCoordinatesAreNil(t *testing.T) {
	var req MoveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"playerId": 1}`), &req))
	assert.Nil(t, req.Row)
	assert.Nil(t, req.Col)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, ID(42), id)

	_, err = ParseID("game-1")
	assert.ErrorIs(t, err, ErrInvalidID)
}
