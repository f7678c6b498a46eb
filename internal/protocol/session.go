package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Config holds the plain values a session needs from the command line
type Config struct {
	GameType    string
	Reservation string // Joins a prepared game when set
}

// DefaultConfig returns a config joining any piranhas game
func DefaultConfig() Config {
	return Config{GameType: GameType}
}

// sessionState is one of preGame, inGame or ended
type sessionState interface {
	sessionState()
}

// preGame collects what the server tells us before the first state
type preGame struct {
	roomID string
	color  model.PlayerColor // Empty until welcomed
}

// inGame exists from the first state element on
type inGame struct {
	roomID string
	color  model.PlayerColor
	board  *board.Board
	logic  Logic

	// populating is true until the first state element closes
	populating bool

	stateTurn int
	hasTurn   bool
}

type ended struct {
	roomID string
	color  model.PlayerColor
	board  *board.Board // nil if the game never started
}

func (*preGame) sessionState() {}
func (*inGame) sessionState()  {}
func (*ended) sessionState()   {}

// Session drives one game from join to end over a Transport. It is not safe
// for concurrent use.
type Session struct {
	id        string
	transport Transport
	config    Config
	newLogic  LogicFactory
	observers []Observer
	logger    *slog.Logger

	phase       Phase
	state       sessionState
	dataClasses []string
	result      *resultBuilder
	gameResult  *model.GameResult
	err         error
}

// NewSession creates a session in PhaseConnected. newLogic is called once,
// when the first state arrives.
func NewSession(transport Transport, config Config, newLogic LogicFactory, logger *slog.Logger, observers ...Observer) *Session {
	if config.GameType == "" {
		config.GameType = GameType
	}
	id := uuid.NewString()

	return &Session{
		id:        id,
		transport: transport,
		config:    config,
		newLogic:  newLogic,
		observers: observers,
		logger: logger.With(
			slog.String("component", "session"),
			slog.String("session_id", id),
		),
		phase: PhaseConnected,
		state: &preGame{},
	}
}

// ID returns the identifier used to correlate this session's log lines
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current lifecycle stage
func (s *Session) Phase() Phase {
	return s.phase
}

// Err returns the error that terminated the session, if any
func (s *Session) Err() error {
	return s.err
}

// Result returns the final result once received
func (s *Session) Result() (model.GameResult, bool) {
	if s.gameResult == nil {
		return model.GameResult{}, false
	}
	return *s.gameResult, true
}

// RoomID returns the room assigned by the server, or ""
func (s *Session) RoomID() string {
	switch st := s.state.(type) {
	case *preGame:
		return st.roomID
	case *inGame:
		return st.roomID
	case *ended:
		return st.roomID
	}
	return ""
}

// Color returns the color this client plays, or "" before the welcome
func (s *Session) Color() model.PlayerColor {
	switch st := s.state.(type) {
	case *preGame:
		return st.color
	case *inGame:
		return st.color
	case *ended:
		return st.color
	}
	return ""
}

// Board returns a copy of the current board, or nil before the first state
func (s *Session) Board() *board.Board {
	switch st := s.state.(type) {
	case *inGame:
		return st.board.Clone()
	case *ended:
		if st.board != nil {
			return st.board.Clone()
		}
	}
	return nil
}

// Run joins a game and processes server events until the session ends or
// fails. Run blocks on the transport; closing the transport unblocks it.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	dec := NewTransportDecoder(s.transport)
	for !s.phase.Done() {
		if err := ctx.Err(); err != nil {
			return s.fail(err)
		}

		ev, err := dec.Next()
		if err != nil {
			if !errors.Is(err, model.ErrProtocol) {
				err = fmt.Errorf("receive: %w", err)
			}
			return s.fail(err)
		}

		if err := s.HandleEvent(ev); err != nil {
			return err
		}
	}

	if s.phase == PhaseEnded {
		if err := s.transport.Send(EncodeClose()); err != nil {
			s.logger.Warn("failed to close protocol stream", slog.String("error", err.Error()))
		}
	}

	return s.err
}

// Start sends the join request
func (s *Session) Start() error {
	if s.phase != PhaseConnected {
		return s.err
	}

	msg, err := EncodeJoin(s.config.GameType, s.config.Reservation)
	if err != nil {
		return s.fail(err)
	}
	if err := s.transport.Send(msg); err != nil {
		return s.fail(fmt.Errorf("send join: %w", err))
	}

	s.logger.Info("join requested",
		slog.String("game_type", s.config.GameType),
		slog.Bool("reservation", s.config.Reservation != ""),
	)
	s.setPhase(PhaseJoined)
	return nil
}

// HandleEvent applies a single event. Any error is fatal: the session moves
// to PhaseTerminated and ignores further events.
func (s *Session) HandleEvent(ev Event) error {
	if s.phase.Done() {
		return s.err
	}

	var err error
	switch ev.Kind {
	case EventStart:
		err = s.handleStart(ev)
	case EventEnd:
		err = s.handleEnd(ev)
	case EventText:
		if s.result != nil {
			s.result.text(ev.Text)
		}
	}
	if err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Session) handleStart(ev Event) error {
	switch ev.Name {
	case "joined":
		return s.onJoined(ev)
	case "welcome":
		return s.onWelcome(ev)
	case "data":
		return s.onDataStart(ev)
	case "state":
		return s.onStateStart(ev)
	case "field":
		return s.onField(ev)
	case "lastMove":
		return s.onLastMove(ev)
	case "score", "part", "winner":
		if s.result != nil {
			return s.result.start(ev)
		}
	case "left":
		s.endGame("left")
	}
	return nil
}

func (s *Session) handleEnd(ev Event) error {
	switch ev.Name {
	case "state":
		s.onStateEnd()
	case "data":
		return s.onDataEnd()
	case "score", "part":
		if s.result != nil {
			return s.result.end(ev.Name)
		}
	case "protocol":
		s.endGame("protocol closed by server")
	}
	return nil
}

func (s *Session) onJoined(ev Event) error {
	roomID, err := requireAttr(ev, "roomId")
	if err != nil {
		return err
	}

	switch st := s.state.(type) {
	case *preGame:
		st.roomID = roomID
	case *inGame:
		st.roomID = roomID
	}

	s.logger = s.logger.With(slog.String("room_id", roomID))
	s.logger.Info("joined room")
	if s.phase < PhaseInRoom {
		s.setPhase(PhaseInRoom)
	}
	return nil
}

func (s *Session) onWelcome(ev Event) error {
	raw, err := requireAttr(ev, "color")
	if err != nil {
		return err
	}
	color, err := model.ParsePlayerColor(strings.ToUpper(raw))
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrProtocol, err)
	}

	st, ok := s.state.(*preGame)
	if !ok {
		s.logger.Warn("ignoring welcome after game start", slog.String("color", color.String()))
		return nil
	}
	st.color = color

	s.logger.Info("color assigned", slog.String("color", color.String()))
	for _, obs := range s.observers {
		if l, ok := obs.(SessionListener); ok {
			l.OnColorAssigned(color)
		}
	}
	return nil
}

func (s *Session) onDataStart(ev Event) error {
	class, _ := ev.Attr("class")
	s.dataClasses = append(s.dataClasses, class)

	switch {
	case class == ClassWelcome:
		return s.onWelcome(ev)
	case isMoveRequest(class):
		return s.onMoveRequest()
	case class == ClassResult:
		s.result = &resultBuilder{}
	}
	return nil
}

func (s *Session) onDataEnd() error {
	if len(s.dataClasses) == 0 {
		return nil
	}
	class := s.dataClasses[len(s.dataClasses)-1]
	s.dataClasses = s.dataClasses[:len(s.dataClasses)-1]

	if class == ClassResult && s.result != nil {
		s.finishResult()
	}
	return nil
}

func (s *Session) onStateStart(ev Event) error {
	turn, hasTurn, err := optionalIntAttr(ev, "turn")
	if err != nil {
		return err
	}

	var game *inGame
	switch st := s.state.(type) {
	case *preGame:
		raw, err := requireAttr(ev, "startPlayerColor")
		if err != nil {
			return err
		}
		start, err := model.ParsePlayerColor(raw)
		if err != nil {
			return fmt.Errorf("%w: %w", model.ErrProtocol, err)
		}
		if st.color == "" {
			return violation(model.ErrUnexpectedElement, "state received before a color was assigned")
		}

		logic := s.newLogic(st.color)
		if logic == nil {
			return fmt.Errorf("no game logic for %s", st.color)
		}
		game = &inGame{
			roomID:     st.roomID,
			color:      st.color,
			board:      board.New(start),
			logic:      logic,
			populating: true,
		}
		s.state = game

		s.logger.Info("game started",
			slog.String("color", st.color.String()),
			slog.String("start_player", start.String()),
		)
	case *inGame:
		game = st
	default:
		return nil
	}

	game.stateTurn, game.hasTurn = turn, hasTurn
	return nil
}

func (s *Session) onStateEnd() {
	game, ok := s.state.(*inGame)
	if !ok {
		return
	}

	if game.populating {
		game.populating = false
		s.setPhase(PhaseActive)
	}
	if game.hasTurn && game.stateTurn != game.board.Turn() {
		s.logger.Warn("server turn differs from local turn",
			slog.Int("server_turn", game.stateTurn),
			slog.Int("local_turn", game.board.Turn()),
		)
	}
	game.hasTurn = false

	s.logger.Debug("board updated",
		slog.Int("turn", game.board.Turn()),
		slog.String("current_player", game.board.CurrentPlayer().String()),
		slog.String("board", game.board.String()),
	)

	game.logic.OnGameStateUpdated(game.board.Clone())
	for _, obs := range s.observers {
		obs.OnGameStateUpdated(game.board.Clone())
	}
}

func (s *Session) onField(ev Event) error {
	game, ok := s.state.(*inGame)
	if !ok || !game.populating {
		return nil
	}

	x, y, err := coordAttrs(ev)
	if err != nil {
		return err
	}
	raw, err := requireAttr(ev, "state")
	if err != nil {
		return err
	}
	state, err := model.ParseFieldState(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrProtocol, err)
	}
	return game.board.SetFieldState(x, y, state)
}

func (s *Session) onLastMove(ev Event) error {
	game, ok := s.state.(*inGame)
	if !ok || game.populating {
		// The initial fields already include the effect of any earlier move
		return nil
	}

	x, y, err := coordAttrs(ev)
	if err != nil {
		return err
	}
	raw, err := requireAttr(ev, "direction")
	if err != nil {
		return err
	}
	dir, err := model.ParseDirection(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrProtocol, err)
	}

	move := model.NewMove(x, y, dir)
	if err := game.board.PerformMove(move); err != nil {
		return fmt.Errorf("%w: %w: %s: %w", model.ErrProtocol, model.ErrStateDiverged, move, err)
	}

	s.logger.Debug("move replayed",
		slog.String("move", move.String()),
		slog.Int("turn", game.board.Turn()),
	)
	return nil
}

func (s *Session) onMoveRequest() error {
	game, ok := s.state.(*inGame)
	if !ok || game.populating {
		return violation(model.ErrUnexpectedElement, "move requested before the board was initialised")
	}
	if game.roomID == "" {
		return violation(model.ErrUnexpectedElement, "move requested outside a room")
	}

	move := game.logic.OnMoveRequested(game.board.Clone())
	if move == nil {
		return violation(model.ErrNoMoveReturned, "turn %d", game.board.Turn())
	}

	msg, err := EncodeMove(game.roomID, *move)
	if err != nil {
		return err
	}
	if err := s.transport.Send(msg); err != nil {
		return fmt.Errorf("send move: %w", err)
	}

	s.logger.Info("move sent",
		slog.String("move", move.String()),
		slog.Int("turn", game.board.Turn()),
		slog.Int("hints", len(move.DebugHints)),
	)
	return nil
}

func (s *Session) finishResult() {
	result := s.result.build()
	s.result = nil
	s.gameResult = &result

	attrs := []any{slog.Int("scores", len(result.Scores))}
	if result.Winner != nil {
		attrs = append(attrs,
			slog.String("winner", result.Winner.DisplayName),
			slog.String("winner_color", result.Winner.Color.String()),
		)
	}
	s.logger.Info("game result received", attrs...)

	if game, ok := s.state.(*inGame); ok {
		game.logic.OnGameResultReceived(result)
	}
	for _, obs := range s.observers {
		obs.OnGameResultReceived(result)
	}

	s.endGame("result received")
}

func (s *Session) endGame(reason string) {
	if s.phase.Done() {
		return
	}

	final := &ended{}
	switch st := s.state.(type) {
	case *preGame:
		final.roomID, final.color = st.roomID, st.color
	case *inGame:
		final.roomID, final.color, final.board = st.roomID, st.color, st.board
		st.logic.OnGameEnded()
	}
	for _, obs := range s.observers {
		obs.OnGameEnded()
	}
	s.state = final

	s.logger.Info("game ended", slog.String("reason", reason))
	s.setPhase(PhaseEnded)
}

// fail records the first fatal error and terminates the session
func (s *Session) fail(err error) error {
	if s.err == nil {
		s.err = err
	}
	s.logger.Error("session terminated",
		slog.String("phase", s.phase.String()),
		slog.String("error", err.Error()),
	)
	s.setPhase(PhaseTerminated)
	return s.err
}

func (s *Session) setPhase(phase Phase) {
	if s.phase == phase {
		return
	}
	s.logger.Debug("phase changed",
		slog.String("from", s.phase.String()),
		slog.String("to", phase.String()),
	)
	s.phase = phase

	for _, obs := range s.observers {
		if l, ok := obs.(SessionListener); ok {
			l.OnPhaseChanged(phase)
		}
	}
}

func violation(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", model.ErrProtocol, kind, fmt.Sprintf(format, args...))
}

func requireAttr(ev Event, name string) (string, error) {
	v, ok := ev.Attr(name)
	if !ok {
		return "", violation(model.ErrMissingAttribute, "%s on <%s>", name, ev.Name)
	}
	return v, nil
}

func optionalIntAttr(ev Event, name string) (int, bool, error) {
	raw, ok := ev.Attr(name)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, violation(model.ErrMalformedAttribute, "%s=%q on <%s>", name, raw, ev.Name)
	}
	return v, true, nil
}

func coordAttrs(ev Event) (int, int, error) {
	var coords [2]int
	for i, name := range []string{"x", "y"} {
		raw, err := requireAttr(ev, name)
		if err != nil {
			return 0, 0, err
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v >= model.BoardSize {
			return 0, 0, violation(model.ErrMalformedAttribute, "%s=%q on <%s>", name, raw, ev.Name)
		}
		coords[i] = v
	}
	return coords[0], coords[1], nil
}
