package model

import "fmt"

// Move moves the piranha at (X, Y) in Direction
type Move struct {
	X         int
	Y         int
	Direction Direction

	// DebugHints are sent to the server alongside the move, in order
	DebugHints []string
}

// NewMove creates a move without hints
func NewMove(x, y int, direction Direction) Move {
	return Move{X: x, Y: y, Direction: direction}
}

// AddHint appends a debug hint
func (m *Move) AddHint(hint string) {
	m.DebugHints = append(m.DebugHints, hint)
}

// SameAs returns true if both moves describe the same action, ignoring hints
func (m Move) SameAs(other Move) bool {
	return m.X == other.X && m.Y == other.Y && m.Direction == other.Direction
}

// Clone returns a copy that shares no hint storage with m
func (m Move) Clone() Move {
	c := m
	if m.DebugHints != nil {
		c.DebugHints = append([]string(nil), m.DebugHints...)
	}
	return c
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d) %s", m.X, m.Y, m.Direction)
}
