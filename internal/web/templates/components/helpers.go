package components

import (
	"fmt"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
)

var colors = []model.PlayerColor{model.PlayerRed, model.PlayerBlue}

// CellClass returns the CSS class of a field state
func CellClass(state model.FieldState) string {
	switch state {
	case model.FieldRed:
		return "cell-red"
	case model.FieldBlue:
		return "cell-blue"
	case model.FieldObstructed:
		return "cell-obstructed"
	default:
		return "cell-empty"
	}
}

// rowY maps a view row index to its y coordinate
func rowY(i int) int {
	return model.BoardSize - 1 - i
}

// isLastMove reports whether (x, y) is where the last move started or landed
func isLastMove(view observer.GameView, x, y int) bool {
	if view.LastMove != nil && view.LastMove.X == x && view.LastMove.Y == y {
		return true
	}
	return view.LastLanding != nil && view.LastLanding.X == x && view.LastLanding.Y == y
}

func swarmSummary(view observer.GameView, c model.PlayerColor) string {
	return fmt.Sprintf("%d in %d swarm(s)", view.Pieces[c.String()], view.Swarms[c.String()])
}

func winnerLabel(result *observer.ResultView) string {
	return fmt.Sprintf("%s (%s)", result.Winner, result.WinnerColor)
}

func scoreLabel(sc observer.ScoreView) string {
	if sc.Reason == "" {
		return string(sc.Cause)
	}
	return string(sc.Cause) + ": " + sc.Reason
}
