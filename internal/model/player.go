package model

import "strings"

// PlayerID uniquely identifies a player across the system
type PlayerID int64

// Color is the side a player draws for
type Color string

const (
	ColorRed  Color = "RED"
	ColorBlue Color = "BLUE"
)

// ParseColor accepts any casing of RED or BLUE
func ParseColor(s string) (Color, error) {
	switch Color(strings.ToUpper(strings.TrimSpace(s))) {
	case ColorRed:
		return ColorRed, nil
	case ColorBlue:
		return ColorBlue, nil
	default:
		return "", ErrInvalidColor
	}
}

// Opponent returns the other color
func (c Color) Opponent() Color {
	if c == ColorRed {
		return ColorBlue
	}
	return ColorRed
}

// Player is one side of a single game. Players are created on create/join and never deleted.
type Player struct {
	ID    PlayerID
	Color Color
	Score int
}
