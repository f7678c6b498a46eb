package model

import "fmt"

// Direction is one of the eight compass directions a piranha can move in
type Direction string

const (
	DirectionUp        Direction = "UP"
	DirectionUpRight   Direction = "UP_RIGHT"
	DirectionRight     Direction = "RIGHT"
	DirectionDownRight Direction = "DOWN_RIGHT"
	DirectionDown      Direction = "DOWN"
	DirectionDownLeft  Direction = "DOWN_LEFT"
	DirectionLeft      Direction = "LEFT"
	DirectionUpLeft    Direction = "UP_LEFT"
)

// Directions lists all directions in a fixed order
var Directions = [8]Direction{
	DirectionUp,
	DirectionUpRight,
	DirectionRight,
	DirectionDownRight,
	DirectionDown,
	DirectionDownLeft,
	DirectionLeft,
	DirectionUpLeft,
}

// ParseDirection converts a wire token into a Direction
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// IsValid returns true if d is one of the eight known directions
func (d Direction) IsValid() bool {
	_, _, ok := d.vector()
	return ok
}

// Vector returns the unit step of the direction. Up increases y.
// An unknown direction yields (0, 0).
func (d Direction) Vector() (dx, dy int) {
	dx, dy, _ = d.vector()
	return dx, dy
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	dx, dy, ok := d.vector()
	if !ok {
		return ""
	}
	for _, o := range Directions {
		ox, oy := o.Vector()
		if ox == -dx && oy == -dy {
			return o
		}
	}
	return ""
}

func (d Direction) vector() (int, int, bool) {
	switch d {
	case DirectionUp:
		return 0, 1, true
	case DirectionUpRight:
		return 1, 1, true
	case DirectionRight:
		return 1, 0, true
	case DirectionDownRight:
		return 1, -1, true
	case DirectionDown:
		return 0, -1, true
	case DirectionDownLeft:
		return -1, -1, true
	case DirectionLeft:
		return -1, 0, true
	case DirectionUpLeft:
		return -1, 1, true
	default:
		return 0, 0, false
	}
}

func (d Direction) String() string {
	return string(d)
}
