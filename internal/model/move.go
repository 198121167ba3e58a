package model

import (
	"strings"
	"time"
)

// Orientation says whether an edge runs across or down
type Orientation string

const (
	Horizontal Orientation = "HORIZONTAL"
	Vertical   Orientation = "VERTICAL"
)

// ParseOrientation accepts the full names and the h/v shorthands used by the CLI
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HORIZONTAL", "H", "HOR":
		return Horizontal, nil
	case "VERTICAL", "V", "VERT":
		return Vertical, nil
	default:
		return "", ErrInvalidOrientation
	}
}

// Edge identifies a single line on the grid
type Edge struct {
	Orientation Orientation
	Row         int
	Col         int
}

// Box identifies a unit square by its top-left dot
type Box struct {
	Row int
	Col int
}

// Move is one accepted edge placement. Seq is the insertion index within the game and is the
// only ordering key; CreatedAt may collide between moves.
type Move struct {
	GameID     GameID
	PlayerID   PlayerID
	Edge       Edge
	AwardedBox bool
	Seq        int
	CreatedAt  time.Time
}

// BoxOwnership records which color closed a box and with which move
type BoxOwnership struct {
	GameID  GameID
	Color   Color
	Box     Box
	MoveSeq int
}
