package protocol

import (
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Observer is notified about the progress of a game. Every board handed to
// an observer is its own copy.
type Observer interface {
	OnGameEnded()
	OnGameResultReceived(result model.GameResult)
	OnGameStateUpdated(snapshot *board.Board)
}

// Logic is the decision capability playing for this client
type Logic interface {
	Observer

	// OnMoveRequested returns the move to send, or nil to decline.
	// Declining a requested move ends the session with an error.
	OnMoveRequested(snapshot *board.Board) *model.Move
}

// LogicFactory creates the Logic once the assigned color is known
type LogicFactory func(color model.PlayerColor) Logic

// SessionListener is optionally implemented by observers that also want
// lifecycle updates
type SessionListener interface {
	OnPhaseChanged(phase Phase)
	OnColorAssigned(color model.PlayerColor)
}

// Transport carries raw protocol bytes to and from the game server
type Transport interface {
	Send(data []byte) error
	// Receive blocks until at least one byte is available
	Receive() ([]byte, error)
}
