package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
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
	case Summary:
		o.printSummary(v)
	case GameStatus:
		o.printGameStatus(v)
	case MoveList:
		o.printMoveList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Summary describes a finished session
type Summary struct {
	SessionID string  `json:"session_id"`
	RoomID    string  `json:"room_id,omitempty"`
	Color     string  `json:"color,omitempty"`
	Phase     string  `json:"phase"`
	Turn      int     `json:"turn"`
	Result    *Result `json:"result,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Result response type (matches the status API)
type Result struct {
	Scores      []Score `json:"scores"`
	Winner      string  `json:"winner,omitempty"`
	WinnerColor string  `json:"winner_color,omitempty"`
	Draw        bool    `json:"draw"`
}

// Score response type
type Score struct {
	Cause  string    `json:"cause"`
	Reason string    `json:"reason,omitempty"`
	Values []float64 `json:"values"`
}

// Move response type
type Move struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Direction string `json:"direction"`
}

// GameStatus response type
type GameStatus struct {
	Phase         string         `json:"phase"`
	Color         string         `json:"color,omitempty"`
	Turn          int            `json:"turn"`
	Round         int            `json:"round"`
	CurrentPlayer string         `json:"current_player,omitempty"`
	Rows          [][]string     `json:"rows,omitempty"`
	Pieces        map[string]int `json:"pieces,omitempty"`
	Swarms        map[string]int `json:"swarms,omitempty"`
	LastMove      *Move          `json:"last_move,omitempty"`
	Result        *Result        `json:"result,omitempty"`
}

// MoveList response type
type MoveList struct {
	CurrentPlayer string `json:"current_player"`
	Turn          int    `json:"turn"`
	Moves         []Move `json:"moves"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

var cellGlyphs = map[string]string{
	"RED":        "R",
	"BLUE":       "B",
	"OBSTRUCTED": "X",
	"EMPTY":      "-",
}

func (o *Output) printSummary(s Summary) {
	fmt.Fprintf(o.w, "Session: %s\n", s.SessionID)
	if s.RoomID != "" {
		fmt.Fprintf(o.w, "Room: %s\n", s.RoomID)
	}
	if s.Color != "" {
		fmt.Fprintf(o.w, "Color: %s\n", s.Color)
	}
	fmt.Fprintf(o.w, "Phase: %s\n", s.Phase)
	fmt.Fprintf(o.w, "Turn: %d\n", s.Turn)
	if s.Result != nil {
		o.printResult(*s.Result)
	}
	if s.Error != "" {
		fmt.Fprintf(o.w, "Error: %s\n", s.Error)
	}
}

func (o *Output) printResult(r Result) {
	if r.Draw {
		fmt.Fprintln(o.w, "Result: draw")
	} else {
		fmt.Fprintf(o.w, "Result: %s (%s) wins\n", r.Winner, r.WinnerColor)
	}
	for i, sc := range r.Scores {
		parts := make([]string, len(sc.Values))
		for j, v := range sc.Values {
			parts[j] = fmt.Sprint(v)
		}
		line := fmt.Sprintf("  %d. %s [%s]", i+1, sc.Cause, strings.Join(parts, ", "))
		if sc.Reason != "" {
			line += " " + sc.Reason
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printGameStatus(g GameStatus) {
	fmt.Fprintf(o.w, "Phase: %s\n", g.Phase)
	if g.Color != "" {
		fmt.Fprintf(o.w, "Color: %s\n", g.Color)
	}
	if g.Rows == nil {
		fmt.Fprintln(o.w, "Waiting for the first game state")
		return
	}
	fmt.Fprintf(o.w, "Turn: %d (round %d), %s to move\n", g.Turn, g.Round, g.CurrentPlayer)
	for _, c := range []string{"RED", "BLUE"} {
		fmt.Fprintf(o.w, "%s: %d pieces in %d swarm(s)\n", c, g.Pieces[c], g.Swarms[c])
	}
	if g.LastMove != nil {
		fmt.Fprintf(o.w, "Last move: (%d,%d) %s\n", g.LastMove.X, g.LastMove.Y, g.LastMove.Direction)
	}
	for _, row := range g.Rows {
		var sb strings.Builder
		for _, cell := range row {
			sb.WriteString(cellGlyphs[cell])
		}
		fmt.Fprintln(o.w, sb.String())
	}
	if g.Result != nil {
		o.printResult(*g.Result)
	}
}

func (o *Output) printMoveList(m MoveList) {
	fmt.Fprintf(o.w, "Legal moves for %s (%d):\n", m.CurrentPlayer, len(m.Moves))
	for _, mv := range m.Moves {
		fmt.Fprintf(o.w, "  (%d,%d) %s\n", mv.X, mv.Y, mv.Direction)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	if h.Version != "" {
		fmt.Fprintf(o.w, "Status: %s (version %s)\n", h.Status, h.Version)
		return
	}
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
