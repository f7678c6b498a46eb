package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrTurnLimitReached   = errors.New("turn limit reached")
	ErrOutOfBounds        = errors.New("coordinates are off the board")
	ErrNotOwnPiece        = errors.New("origin does not hold a piranha of the current player")
	ErrNoDistance         = errors.New("move distance is undefined")
	ErrDestinationBlocked = errors.New("destination cannot be covered")
	ErrPathBlocked        = errors.New("path is blocked by an opponent piranha")

	// Parse errors
	ErrUnknownDirection   = errors.New("unknown direction")
	ErrUnknownFieldState  = errors.New("unknown field state")
	ErrUnknownPlayerColor = errors.New("unknown player color")
	ErrUnknownScoreCause  = errors.New("unknown score cause")

	// Protocol errors
	ErrProtocol           = errors.New("protocol error")
	ErrMissingAttribute   = errors.New("missing attribute")
	ErrMalformedAttribute = errors.New("malformed attribute")
	ErrUnexpectedElement  = errors.New("unexpected element")
	ErrNoMoveReturned     = errors.New("no move returned for move request")
	ErrStateDiverged      = errors.New("server move could not be replayed locally")

	// Transport errors
	ErrConnectionClosed = errors.New("connection closed")

	// Storage errors
	ErrEvaluationNotFound = errors.New("evaluation not found")

	// Strategy errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")

	// Status errors
	ErrNoGameState = errors.New("no game state received yet")
)
