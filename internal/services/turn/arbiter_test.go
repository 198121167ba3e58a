package turn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/dotsgame/internal/model"
)

const (
	redID  model.PlayerID = 1
	blueID model.PlayerID = 2
)

var colors = map[model.PlayerID]model.Color{
	redID:  model.ColorRed,
	blueID: model.ColorBlue,
}

func move(p model.PlayerID, awarded bool) model.Move {
	return model.Move{PlayerID: p, AwardedBox: awarded}
}

func TestWhoseTurn(t *testing.T) {
	tests := []struct {
		name  string
		moves []model.Move
		want  model.Color
	}{
		{"red opens", nil, model.ColorRed},
		{"turn passes after a plain move", []model.Move{move(redID, false)}, model.ColorBlue},
		{"turn passes back", []model.Move{move(redID, false), move(blueID, false)}, model.ColorRed},
		{"scorer moves again", []model.Move{move(redID, false), move(blueID, true)}, model.ColorBlue},
		{
			"scorer keeps going until a plain move",
			[]model.Move{move(redID, true), move(redID, true), move(redID, false)},
			model.ColorBlue,
		},
		{"only the last move counts", []model.Move{move(redID, true), move(redID, false), move(blueID, true)}, model.ColorBlue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WhoseTurn(tt.moves, colors))
		})
	}
}

func TestWhoseTurnIgnoresPlayerOneColor(t *testing.T) {
	// Player one picked BLUE; RED still opens
	swapped := map[model.PlayerID]model.Color{
		redID:  model.ColorBlue,
		blueID: model.ColorRed,
	}
	assert.Equal(t, model.ColorRed, WhoseTurn(nil, swapped))
	assert.Equal(t, model.ColorRed, WhoseTurn([]model.Move{move(blueID, true)}, swapped))
	assert.Equal(t, model.ColorBlue, WhoseTurn([]model.Move{move(blueID, false)}, swapped))
}

func TestCanMove(t *testing.T) {
	moves := []model.Move{move(redID, false)}
	assert.True(t, CanMove(moves, colors, model.ColorBlue))
	assert.False(t, CanMove(moves, colors, model.ColorRed))
	assert.True(t, CanMove(nil, colors, model.ColorRed))
}

func TestColors(t *testing.T) {
	got := Colors(
		&model.Player{ID: 3, Color: model.ColorBlue},
		nil,
		&model.Player{ID: 4, Color: model.ColorRed},
	)
	assert.Equal(t, map[model.PlayerID]model.Color{3: model.ColorBlue, 4: model.ColorRed}, got)
}
