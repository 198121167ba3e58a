package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w, or stdout if w is nil
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == FormatJSON {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Seat:
		o.printSeat(v)
	case MoveResult:
		o.printMoveResult(v)
	case GameState:
		o.printGameState(v)
	case Board:
		o.printBoard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Seat response type (matches API)
type Seat struct {
	GameID     int64  `json:"gameId"`
	PlayerID   int64  `json:"playerId"`
	PlayerType string `json:"playerType"`
}

// BoxResult response type
type BoxResult struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Owner string `json:"owner,omitempty"`
}

// MoveResult response type
type MoveResult struct {
	BoxesCompleted []BoxResult `json:"boxesCompleted"`
	WhoseTurn      string      `json:"whoseTurn"`
	State          string      `json:"state"`
}

// GameState response type
type GameState struct {
	WhoseTurn string `json:"whoseTurn"`
	State     string `json:"state"`
	RedScore  int    `json:"redScore"`
	BlueScore int    `json:"blueScore"`
	Winner    string `json:"winner,omitempty"`
}

// Line response type
type Line struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Filled bool `json:"filled"`
}

// Board response type
type Board struct {
	HorizontalLines []Line      `json:"horizontalLines"`
	VerticalLines   []Line      `json:"verticalLines"`
	Boxes           []BoxResult `json:"boxes"`
}

// HealthResult is the health response plus the server that answered
type HealthResult struct {
	Status string `json:"status"`
	Server string `json:"server,omitempty"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printSeat(s Seat) {
	o.printf("Game: %d\n", s.GameID)
	o.printf("Player: %d\n", s.PlayerID)
	o.printf("Color: %s\n", s.PlayerType)
}

func (o *Output) printMoveResult(m MoveResult) {
	if len(m.BoxesCompleted) == 0 {
		o.printf("Line drawn\n")
	} else {
		boxes := make([]string, 0, len(m.BoxesCompleted))
		for _, b := range m.BoxesCompleted {
			boxes = append(boxes, fmt.Sprintf("(%d,%d)", b.Row, b.Col))
		}
		o.printf("Completed: %s\n", strings.Join(boxes, " "))
	}
	o.printf("State: %s\n", m.State)
	o.printf("Next: %s\n", m.WhoseTurn)
}

func (o *Output) printGameState(g GameState) {
	o.printf("State: %s\n", g.State)
	o.printf("Turn: %s\n", g.WhoseTurn)
	o.printf("RED: %d\n", g.RedScore)
	o.printf("BLUE: %d\n", g.BlueScore)
	if g.Winner != "" {
		o.printf("\nWinner: %s\n", g.Winner)
	}
}

// printBoard draws dots as +, lines as --- and |, and owned boxes by their color's initial
func (o *Output) printBoard(b Board) {
	size := 0
	for _, box := range b.Boxes {
		size = max(size, box.Row+1, box.Col+1)
	}
	if size == 0 {
		return
	}

	horizontal := make(map[[2]int]bool, len(b.HorizontalLines))
	for _, l := range b.HorizontalLines {
		horizontal[[2]int{l.Row, l.Col}] = l.Filled
	}
	vertical := make(map[[2]int]bool, len(b.VerticalLines))
	for _, l := range b.VerticalLines {
		vertical[[2]int{l.Row, l.Col}] = l.Filled
	}
	owners := make(map[[2]int]string, len(b.Boxes))
	for _, box := range b.Boxes {
		owners[[2]int{box.Row, box.Col}] = box.Owner
	}

	for row := 0; row <= size; row++ {
		var sb strings.Builder
		sb.WriteString("+")
		for col := 0; col < size; col++ {
			if horizontal[[2]int{row, col}] {
				sb.WriteString("---")
			} else {
				sb.WriteString("   ")
			}
			sb.WriteString("+")
		}
		o.printf("%s\n", sb.String())

		if row == size {
			break
		}

		sb.Reset()
		for col := 0; col <= size; col++ {
			if vertical[[2]int{row, col}] {
				sb.WriteString("|")
			} else {
				sb.WriteString(" ")
			}
			if col < size {
				sb.WriteString(" " + ownerMark(owners[[2]int{row, col}]) + " ")
			}
		}
		o.printf("%s\n", strings.TrimRight(sb.String(), " "))
	}
}

func ownerMark(owner string) string {
	switch owner {
	case "RED":
		return "R"
	case "BLUE":
		return "B"
	default:
		return " "
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	if h.Server != "" {
		o.printf("Server: %s\n", h.Server)
	}
	o.printf("Status: %s\n", h.Status)
}
