package model

// GridSize is the number of boxes along each side of the board
const GridSize = 4

// Board is the derived picture of a game: which edges are drawn and who owns each box.
// It is rebuilt from history on demand and never persisted.
type Board struct {
	Size       int
	Horizontal [][]bool  // (Size+1) rows x Size cols
	Vertical   [][]bool  // Size rows x (Size+1) cols
	Owners     [][]Color // Size x Size, "" means unowned
}

// NewBoard creates an empty board with size boxes per side
func NewBoard(size int) *Board {
	horizontal := make([][]bool, size+1)
	for i := range horizontal {
		horizontal[i] = make([]bool, size)
	}
	vertical := make([][]bool, size)
	for i := range vertical {
		vertical[i] = make([]bool, size+1)
	}
	owners := make([][]Color, size)
	for i := range owners {
		owners[i] = make([]Color, size)
	}
	return &Board{
		Size:       size,
		Horizontal: horizontal,
		Vertical:   vertical,
		Owners:     owners,
	}
}

// InBounds returns true if the edge exists on this board
func (b *Board) InBounds(e Edge) bool {
	switch e.Orientation {
	case Horizontal:
		return e.Row >= 0 && e.Row <= b.Size && e.Col >= 0 && e.Col < b.Size
	case Vertical:
		return e.Row >= 0 && e.Row < b.Size && e.Col >= 0 && e.Col <= b.Size
	default:
		return false
	}
}

// HasEdge returns true if the edge has been drawn. Out of range edges are never drawn.
func (b *Board) HasEdge(e Edge) bool {
	if !b.InBounds(e) {
		return false
	}
	if e.Orientation == Horizontal {
		return b.Horizontal[e.Row][e.Col]
	}
	return b.Vertical[e.Row][e.Col]
}

// SetEdge marks the edge as drawn
func (b *Board) SetEdge(e Edge) {
	if !b.InBounds(e) {
		return
	}
	if e.Orientation == Horizontal {
		b.Horizontal[e.Row][e.Col] = true
	} else {
		b.Vertical[e.Row][e.Col] = true
	}
}

// IsValidBox returns true if the box is within the grid
func (b *Board) IsValidBox(box Box) bool {
	return box.Row >= 0 && box.Row < b.Size && box.Col >= 0 && box.Col < b.Size
}

// Owner returns the color owning the box, or "" if nobody does
func (b *Board) Owner(box Box) Color {
	if !b.IsValidBox(box) {
		return ""
	}
	return b.Owners[box.Row][box.Col]
}

// SetOwner records the owner of a box
func (b *Board) SetOwner(box Box, c Color) {
	if b.IsValidBox(box) {
		b.Owners[box.Row][box.Col] = c
	}
}

// BoxEdges returns the four edges surrounding a box: top, bottom, left, right
func (b *Board) BoxEdges(box Box) [4]Edge {
	return [4]Edge{
		{Orientation: Horizontal, Row: box.Row, Col: box.Col},
		{Orientation: Horizontal, Row: box.Row + 1, Col: box.Col},
		{Orientation: Vertical, Row: box.Row, Col: box.Col},
		{Orientation: Vertical, Row: box.Row, Col: box.Col + 1},
	}
}

// AdjacentBoxes returns the one or two boxes that share the edge
func (b *Board) AdjacentBoxes(e Edge) []Box {
	if !b.InBounds(e) {
		return nil
	}
	var boxes []Box
	switch e.Orientation {
	case Horizontal:
		if e.Row > 0 {
			boxes = append(boxes, Box{Row: e.Row - 1, Col: e.Col})
		}
		if e.Row < b.Size {
			boxes = append(boxes, Box{Row: e.Row, Col: e.Col})
		}
	case Vertical:
		if e.Col > 0 {
			boxes = append(boxes, Box{Row: e.Row, Col: e.Col - 1})
		}
		if e.Col < b.Size {
			boxes = append(boxes, Box{Row: e.Row, Col: e.Col})
		}
	}
	return boxes
}

// TotalBoxes returns the number of boxes on the board
func (b *Board) TotalBoxes() int {
	return b.Size * b.Size
}

// OwnedCount returns the number of boxes that have an owner
func (b *Board) OwnedCount() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Owners[row][col] != "" {
				count++
			}
		}
	}
	return count
}

// FilledEdgeCount returns the number of drawn edges
func (b *Board) FilledEdgeCount() int {
	count := 0
	for _, row := range b.Horizontal {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	for _, row := range b.Vertical {
		for _, filled := range row {
			if filled {
				count++
			}
		}
	}
	return count
}

// IsComplete returns true when every box is owned
func (b *Board) IsComplete() bool {
	return b.OwnedCount() == b.TotalBoxes()
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	c := NewBoard(b.Size)
	for i := range b.Horizontal {
		copy(c.Horizontal[i], b.Horizontal[i])
	}
	for i := range b.Vertical {
		copy(c.Vertical[i], b.Vertical[i])
	}
	for i := range b.Owners {
		copy(c.Owners[i], b.Owners[i])
	}
	return c
}
