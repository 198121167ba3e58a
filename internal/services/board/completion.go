package board

import "github.com/mcoot/dotsgame/internal/model"

// CompletedBoxes returns the boxes that drawing e would close, judged on the board as it
// is before e is drawn: a neighbouring box closes when its other three edges are present.
// At most two boxes close, and only when e is an interior edge.
func CompletedBoxes(b *model.Board, e model.Edge) []model.Box {
	if !b.InBounds(e) || b.HasEdge(e) {
		return nil
	}

	var closed []model.Box
	for _, box := range b.AdjacentBoxes(e) {
		if closesBox(b, box, e) {
			closed = append(closed, box)
		}
	}
	return closed
}

// closesBox returns true if every edge of box other than e is drawn
func closesBox(b *model.Board, box model.Box, e model.Edge) bool {
	for _, side := range b.BoxEdges(box) {
		if side == e {
			continue
		}
		if !b.HasEdge(side) {
			return false
		}
	}
	return true
}
