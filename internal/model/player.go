package model

import "fmt"

// PlayerColor identifies one of the two sides
type PlayerColor string

const (
	PlayerRed  PlayerColor = "RED"
	PlayerBlue PlayerColor = "BLUE"
)

// ParsePlayerColor converts a wire token into a PlayerColor
func ParsePlayerColor(s string) (PlayerColor, error) {
	switch c := PlayerColor(s); c {
	case PlayerRed, PlayerBlue:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlayerColor, s)
	}
}

// Opponent returns the other color
func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerRed {
		return PlayerBlue
	}
	return PlayerRed
}

// FieldState returns the state of a field covered by a piranha of this color
func (c PlayerColor) FieldState() FieldState {
	if c == PlayerRed {
		return FieldRed
	}
	return FieldBlue
}

func (c PlayerColor) String() string {
	return string(c)
}
