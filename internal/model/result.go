package model

import "fmt"

// ScoreCause explains how a player's score came about
type ScoreCause string

const (
	// CauseRegular means the player neither broke the rules nor left early
	CauseRegular ScoreCause = "REGULAR"
	// CauseLeft means the player left the game early
	CauseLeft ScoreCause = "LEFT"
	// CauseRuleViolation means the player sent an illegal move
	CauseRuleViolation ScoreCause = "RULE_VIOLATION"
	// CauseSoftTimeout means the player took too long to answer a move request
	CauseSoftTimeout ScoreCause = "SOFT_TIMEOUT"
	// CauseHardTimeout means the player never answered a move request
	CauseHardTimeout ScoreCause = "HARD_TIMEOUT"
	// CauseUnknown covers communication errors
	CauseUnknown ScoreCause = "UNKNOWN"
)

// ParseScoreCause converts a wire token into a ScoreCause
func ParseScoreCause(s string) (ScoreCause, error) {
	switch c := ScoreCause(s); c {
	case CauseRegular, CauseLeft, CauseRuleViolation, CauseSoftTimeout, CauseHardTimeout, CauseUnknown:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScoreCause, s)
	}
}

// Score is one player's end-of-game result
type Score struct {
	Cause  ScoreCause
	Reason string // Empty if the server gave none
	Values []float64
}

// Winner identifies the player who won
type Winner struct {
	DisplayName string
	Color       PlayerColor
}

// GameResult is the final outcome of a game
type GameResult struct {
	Scores []Score
	Winner *Winner // nil on a draw
}

// IsDraw returns true if no winner was announced
func (r GameResult) IsDraw() bool {
	return r.Winner == nil
}
