package board

import "github.com/mcoot/dotsgame/internal/model"

// Validate checks that an edge can be drawn on the board
func Validate(b *model.Board, e model.Edge) error {
	if !b.InBounds(e) {
		return model.ErrOutOfBounds
	}
	if b.HasEdge(e) {
		return model.ErrEdgeOccupied
	}
	return nil
}
