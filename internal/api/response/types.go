package response

import (
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
)

// Health is the response of the health endpoint
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Moves lists the legal moves of the player to move
type Moves struct {
	CurrentPlayer model.PlayerColor   `json:"current_player"`
	Turn          int                 `json:"turn"`
	Moves         []observer.MoveView `json:"moves"`
}

// Coordinate is a board position
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CheckMove reports whether a move is legal on the latest board
type CheckMove struct {
	Legal       bool        `json:"legal"`
	Reason      string      `json:"reason,omitempty"`
	Destination *Coordinate `json:"destination,omitempty"`
}
