package turn

import "github.com/mcoot/dotsgame/internal/model"

// Colors maps each player to the color they draw for
func Colors(players ...*model.Player) map[model.PlayerID]model.Color {
	colors := make(map[model.PlayerID]model.Color, len(players))
	for _, p := range players {
		if p != nil {
			colors[p.ID] = p.Color
		}
	}
	return colors
}

// WhoseTurn returns the color that moves next. RED always opens. After that the last
// mover keeps the turn if the move closed at least one box, otherwise it passes.
// Closing two boxes at once still earns a single extra move.
func WhoseTurn(moves []model.Move, colors map[model.PlayerID]model.Color) model.Color {
	if len(moves) == 0 {
		return model.ColorRed
	}
	last := moves[len(moves)-1]
	mover := colors[last.PlayerID]
	if last.AwardedBox {
		return mover
	}
	return mover.Opponent()
}

// CanMove returns true if it is color's turn
func CanMove(moves []model.Move, colors map[model.PlayerID]model.Color, color model.Color) bool {
	return WhoseTurn(moves, colors) == color
}
