package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mcoot/piranhas-client/internal/api/request"
	"github.com/mcoot/piranhas-client/internal/api/response"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
)

// GameHandler serves the state of the game the client is playing
type GameHandler struct {
	tracker *observer.Tracker
	hub     *observer.Hub
	logger  *slog.Logger
}

// NewGameHandler creates a new game handler; hub may be nil
func NewGameHandler(tracker *observer.Tracker, hub *observer.Hub, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		tracker: tracker,
		hub:     hub,
		logger:  logger,
	}
}

// Get handles GET /api/v1/game
func (h *GameHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, h.tracker.View())
}

// Moves handles GET /api/v1/game/moves, optionally narrowed to ?x=&y=
func (h *GameHandler) Moves(w http.ResponseWriter, r *http.Request) {
	origin, filtered, err := request.ParseOrigin(r.URL.Query())
	if err != nil {
		WriteError(w, NewInvalidRequestError("x and y must both be integers"))
		return
	}

	b := h.tracker.Board()
	if b == nil {
		WriteError(w, model.ErrNoGameState)
		return
	}

	resp := response.Moves{
		CurrentPlayer: b.CurrentPlayer(),
		Turn:          b.Turn(),
		Moves:         []observer.MoveView{},
	}
	for _, m := range b.PossibleMoves() {
		if filtered && (m.X != origin.X || m.Y != origin.Y) {
			continue
		}
		resp.Moves = append(resp.Moves, observer.NewMoveView(m))
	}

	response.JSON(w, http.StatusOK, resp)
}

// Check handles POST /api/v1/game/check
func (h *GameHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req request.CheckMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	direction, err := model.ParseDirection(req.Direction)
	if err != nil {
		WriteError(w, err)
		return
	}
	if !model.IsOnBoard(req.X, req.Y) {
		WriteError(w, fmt.Errorf("%w: (%d,%d)", model.ErrOutOfBounds, req.X, req.Y))
		return
	}

	b := h.tracker.Board()
	if b == nil {
		WriteError(w, model.ErrNoGameState)
		return
	}

	move := model.NewMove(req.X, req.Y, direction)
	if err := b.CheckMove(move); err != nil {
		response.JSON(w, http.StatusOK, response.CheckMove{Legal: false, Reason: err.Error()})
		return
	}

	resp := response.CheckMove{Legal: true}
	if distance, ok := b.Distance(move); ok {
		if dest, ok := b.Destination(move, distance); ok {
			resp.Destination = &response.Coordinate{X: dest.X, Y: dest.Y}
		}
	}
	response.JSON(w, http.StatusOK, resp)
}

// Events handles GET /api/v1/events, a websocket of live game updates
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	initial, err := json.Marshal(observer.Message{Type: observer.EventState, Data: h.tracker.View()})
	if err != nil {
		WriteError(w, err)
		return
	}
	observer.ServeWS(w, r, h.hub, initial, h.logger)
}
