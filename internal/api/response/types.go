package response

import (
	"github.com/mcoot/dotsgame/internal/model"
	"github.com/mcoot/dotsgame/internal/services/game"
)

// ownerNone marks an unclaimed box on the wire
const ownerNone = "NONE"

// Seat is returned when a player takes a side in a game
type Seat struct {
	GameID     int64  `json:"gameId"`
	PlayerID   int64  `json:"playerId"`
	PlayerType string `json:"playerType"`
}

// SeatFromModel builds a Seat from a game and one of its players
func SeatFromModel(g *model.Game, p *model.Player) Seat {
	return Seat{
		GameID:     int64(g.ID),
		PlayerID:   int64(p.ID),
		PlayerType: string(p.Color),
	}
}

// Box is a box position with its owner, or NONE
type Box struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Owner string `json:"owner,omitempty"`
}

// Move describes an accepted move
type Move struct {
	BoxesCompleted []Box  `json:"boxesCompleted"`
	WhoseTurn      string `json:"whoseTurn"`
	State          string `json:"state"`
}

// MoveFromResult converts a game.MoveResult
func MoveFromResult(r *game.MoveResult) Move {
	boxes := make([]Box, 0, len(r.Completed))
	for _, b := range r.Completed {
		boxes = append(boxes, Box{Row: b.Row, Col: b.Col})
	}
	return Move{
		BoxesCompleted: boxes,
		WhoseTurn:      r.WhoseTurn,
		State:          string(r.State),
	}
}

// GameState is the scoreboard of a game
type GameState struct {
	WhoseTurn string `json:"whoseTurn"`
	State     string `json:"state"`
	RedScore  int    `json:"redScore"`
	BlueScore int    `json:"blueScore"`
	Winner    string `json:"winner,omitempty"`
}

// GameStateFromStatus converts a game.Status
func GameStateFromStatus(s *game.Status) GameState {
	return GameState{
		WhoseTurn: s.WhoseTurn,
		State:     string(s.State),
		RedScore:  s.RedScore,
		BlueScore: s.BlueScore,
		Winner:    s.Winner,
	}
}

// Line is one edge of the board
type Line struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Filled bool `json:"filled"`
}

// Board lists every line and box, row by row
type Board struct {
	HorizontalLines []Line `json:"horizontalLines"`
	VerticalLines   []Line `json:"verticalLines"`
	Boxes           []Box  `json:"boxes"`
}

// BoardFromModel converts a model.Board
func BoardFromModel(b *model.Board) Board {
	resp := Board{
		HorizontalLines: linesFrom(b.Horizontal),
		VerticalLines:   linesFrom(b.Vertical),
		Boxes:           make([]Box, 0, b.TotalBoxes()),
	}
	for row := range b.Owners {
		for col, owner := range b.Owners[row] {
			o := string(owner)
			if o == "" {
				o = ownerNone
			}
			resp.Boxes = append(resp.Boxes, Box{Row: row, Col: col, Owner: o})
		}
	}
	return resp
}

func linesFrom(grid [][]bool) []Line {
	var lines []Line
	for row := range grid {
		for col, filled := range grid[row] {
			lines = append(lines, Line{Row: row, Col: col, Filled: filled})
		}
	}
	return lines
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
