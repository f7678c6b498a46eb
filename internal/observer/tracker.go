package observer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/piranhas-client/internal/dependencies/clock"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Event types broadcast to websocket clients
const (
	EventPhase  = "phase"
	EventState  = "state"
	EventResult = "result"
	EventEnded  = "ended"
)

// Tracker keeps the latest game snapshot for readers on other goroutines
// and forwards every change to the hub
type Tracker struct {
	mu        sync.RWMutex
	phase     protocol.Phase
	color     model.PlayerColor
	snapshot  *board.Board
	result    *model.GameResult
	ended     bool
	updatedAt time.Time

	hub    *Hub // may be nil
	clock  clock.Clock
	logger *slog.Logger
}

// Ensure Tracker observes sessions
var (
	_ protocol.Observer        = (*Tracker)(nil)
	_ protocol.SessionListener = (*Tracker)(nil)
)

// NewTracker creates a Tracker; hub may be nil
func NewTracker(hub *Hub, clk clock.Clock, logger *slog.Logger) *Tracker {
	return &Tracker{
		phase:     protocol.PhaseConnected,
		updatedAt: clk.Now(),
		hub:       hub,
		clock:     clk,
		logger:    logger.With(slog.String("component", "tracker")),
	}
}

// OnPhaseChanged records the session phase and broadcasts it
func (t *Tracker) OnPhaseChanged(phase protocol.Phase) {
	t.mu.Lock()
	t.phase = phase
	t.updatedAt = t.clock.Now()
	t.mu.Unlock()

	t.publish(EventPhase, map[string]string{"phase": phase.String()})
}

// OnColorAssigned records the color this client plays
func (t *Tracker) OnColorAssigned(color model.PlayerColor) {
	t.mu.Lock()
	t.color = color
	t.updatedAt = t.clock.Now()
	t.mu.Unlock()
}

// OnGameStateUpdated stores the snapshot and broadcasts the new view.
// The snapshot is the session's copy and is never mutated here.
func (t *Tracker) OnGameStateUpdated(snapshot *board.Board) {
	t.mu.Lock()
	t.snapshot = snapshot
	t.updatedAt = t.clock.Now()
	t.mu.Unlock()

	t.publish(EventState, t.View())
}

// OnGameResultReceived stores the result and broadcasts it
func (t *Tracker) OnGameResultReceived(result model.GameResult) {
	t.mu.Lock()
	t.result = &result
	t.updatedAt = t.clock.Now()
	t.mu.Unlock()

	t.publish(EventResult, NewResultView(result))
}

// OnGameEnded marks the game as ended
func (t *Tracker) OnGameEnded() {
	t.mu.Lock()
	t.ended = true
	t.updatedAt = t.clock.Now()
	t.mu.Unlock()

	t.publish(EventEnded, nil)
}

// Ended returns true once the game has ended
func (t *Tracker) Ended() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ended
}

// Board returns a copy of the latest snapshot, or nil before the first one
func (t *Tracker) Board() *board.Board {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.snapshot == nil {
		return nil
	}
	return t.snapshot.Clone()
}

// LegalMoves returns the moves available to the player to move in the
// latest snapshot
func (t *Tracker) LegalMoves() []model.Move {
	b := t.Board()
	if b == nil {
		return nil
	}
	return b.PossibleMoves()
}

// View returns the current state in its JSON form
func (t *Tracker) View() GameView {
	t.mu.RLock()
	defer t.mu.RUnlock()

	view := GameView{
		Phase:     t.phase,
		Color:     t.color,
		UpdatedAt: t.updatedAt,
	}
	if t.snapshot != nil {
		view.fillBoard(t.snapshot)
	}
	if t.result != nil {
		view.Result = NewResultView(*t.result)
	}
	return view
}

func (t *Tracker) publish(eventType string, data any) {
	if t.hub == nil {
		return
	}
	t.hub.BroadcastEvent(eventType, data)
	t.logger.Debug("event published", slog.String("type", eventType))
}
