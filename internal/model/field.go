package model

import "fmt"

// FieldState is the occupancy of a single board cell.
// The zero value is an empty field.
type FieldState uint8

const (
	FieldEmpty FieldState = iota
	FieldRed
	FieldBlue
	FieldObstructed
)

// ParseFieldState converts a wire token into a FieldState
func ParseFieldState(s string) (FieldState, error) {
	switch s {
	case "EMPTY":
		return FieldEmpty, nil
	case "RED":
		return FieldRed, nil
	case "BLUE":
		return FieldBlue, nil
	case "OBSTRUCTED":
		return FieldObstructed, nil
	default:
		return FieldEmpty, fmt.Errorf("%w: %q", ErrUnknownFieldState, s)
	}
}

// String returns the wire token of the state
func (s FieldState) String() string {
	switch s {
	case FieldEmpty:
		return "EMPTY"
	case FieldRed:
		return "RED"
	case FieldBlue:
		return "BLUE"
	case FieldObstructed:
		return "OBSTRUCTED"
	default:
		return fmt.Sprintf("FieldState(%d)", uint8(s))
	}
}

// MarshalText encodes the state as its wire token
func (s FieldState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire token
func (s *FieldState) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Field is a cell on the board
type Field struct {
	X     int
	Y     int
	State FieldState
}

// HasPiranha returns true if a piranha of either color is on the field
func (f Field) HasPiranha() bool {
	return f.State == FieldRed || f.State == FieldBlue
}

// HasPiranhaOf returns true if a piranha of the given color is on the field
func (f Field) HasPiranhaOf(color PlayerColor) bool {
	return f.State == color.FieldState()
}

// IsEmpty returns true if nothing is on the field
func (f Field) IsEmpty() bool {
	return f.State == FieldEmpty
}

// IsObstructed returns true if an octopus blocks the field
func (f Field) IsObstructed() bool {
	return f.State == FieldObstructed
}

// IsCoverable returns true if a piranha of the given color may land here:
// the field is empty or holds an opponent piranha
func (f Field) IsCoverable(by PlayerColor) bool {
	return f.State == FieldEmpty || f.State == by.Opponent().FieldState()
}

// IsSkippable returns true if a piranha of the given color may jump over
// the field. Only opponent piranhas block; obstructions do not.
func (f Field) IsSkippable(by PlayerColor) bool {
	return f.State != by.Opponent().FieldState()
}
