package observer

import (
	"time"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// MoveView is the JSON form of a move
type MoveView struct {
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Direction model.Direction `json:"direction"`
}

// CoordinateView is the JSON form of a board position
type CoordinateView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ScoreView is the JSON form of a score
type ScoreView struct {
	Cause  model.ScoreCause `json:"cause"`
	Reason string           `json:"reason,omitempty"`
	Values []float64        `json:"values"`
}

// ResultView is the JSON form of a game result
type ResultView struct {
	Scores      []ScoreView       `json:"scores"`
	Winner      string            `json:"winner,omitempty"`
	WinnerColor model.PlayerColor `json:"winner_color,omitempty"`
	Draw        bool              `json:"draw"`
}

// GameView is what the status server reports about the current game
type GameView struct {
	Phase         protocol.Phase       `json:"phase"`
	Color         model.PlayerColor    `json:"color,omitempty"`
	Turn          int                  `json:"turn"`
	Round         int                  `json:"round"`
	CurrentPlayer model.PlayerColor    `json:"current_player,omitempty"`
	Rows          [][]model.FieldState `json:"rows,omitempty"` // Top row (y = 9) first
	Pieces        map[string]int       `json:"pieces,omitempty"`
	Swarms        map[string]int       `json:"swarms,omitempty"`
	LastMove      *MoveView            `json:"last_move,omitempty"`
	LastLanding   *CoordinateView      `json:"last_landing,omitempty"`
	Result        *ResultView          `json:"result,omitempty"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NewMoveView converts a move
func NewMoveView(m model.Move) MoveView {
	return MoveView{X: m.X, Y: m.Y, Direction: m.Direction}
}

// NewResultView converts a game result
func NewResultView(r model.GameResult) *ResultView {
	view := &ResultView{Draw: r.IsDraw()}
	for _, sc := range r.Scores {
		view.Scores = append(view.Scores, ScoreView{Cause: sc.Cause, Reason: sc.Reason, Values: sc.Values})
	}
	if r.Winner != nil {
		view.Winner = r.Winner.DisplayName
		view.WinnerColor = r.Winner.Color
	}
	return view
}

// fillBoard copies the board part of the view from b
func (v *GameView) fillBoard(b *board.Board) {
	v.Turn = b.Turn()
	v.Round = b.Round()
	v.CurrentPlayer = b.CurrentPlayer()

	v.Rows = make([][]model.FieldState, 0, model.BoardSize)
	for y := model.BoardSize - 1; y >= 0; y-- {
		row := make([]model.FieldState, model.BoardSize)
		for x := 0; x < model.BoardSize; x++ {
			row[x], _ = b.FieldState(x, y)
		}
		v.Rows = append(v.Rows, row)
	}

	v.Pieces = map[string]int{}
	v.Swarms = map[string]int{}
	for _, c := range []model.PlayerColor{model.PlayerRed, model.PlayerBlue} {
		v.Pieces[c.String()] = b.PieceCount(c)
		v.Swarms[c.String()] = len(b.Swarms(c))
	}

	if last, ok := b.LastMove(); ok {
		mv := NewMoveView(last)
		v.LastMove = &mv
	}
	if x, y, ok := b.LastDestination(); ok {
		v.LastLanding = &CoordinateView{X: x, Y: y}
	}
}
