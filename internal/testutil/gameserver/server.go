// Package gameserver is a scripted stand-in for the game server, used to
// drive whole sessions in tests.
package gameserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// Script describes the game a Server plays
type Script struct {
	RoomID string
	// Color is sent in the welcome message as is, so case variants can be tested
	Color string
	// Rounds is how many moves are requested from the client
	Rounds int
	// Obstructions are placed on the standard starting layout
	Obstructions [][2]int
}

// DefaultScript plays three rounds with the client as red
func DefaultScript() Script {
	return Script{
		RoomID:       "R1",
		Color:        "red",
		Rounds:       3,
		Obstructions: [][2]int{{3, 4}, {6, 5}},
	}
}

// JoinRequest is the first message the client sent
type JoinRequest struct {
	Element string
	Attrs   map[string]string
}

// Server accepts one client and plays Script with it. The opponent always
// makes the first legal move it finds.
type Server struct {
	listener net.Listener
	script   Script
	logger   *slog.Logger

	mu         sync.Mutex
	join       *JoinRequest
	moves      []model.Move
	result     *model.GameResult
	clientDone bool

	done chan struct{}
	err  error
}

// Start listens on a free loopback port and serves in the background
func Start(script Script, logger *slog.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener: listener,
		script:   script,
		logger:   logger.With(slog.String("component", "fake-game-server")),
		done:     make(chan struct{}),
	}
	go s.serve()
	return s, nil
}

// Port returns the listening port
func (s *Server) Port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

// Done is closed once the connection has been handled
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Err returns why the game failed on the server side; only valid after Done
func (s *Server) Err() error {
	return s.err
}

// Join returns the join request, or nil if none arrived
func (s *Server) Join() *JoinRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.join
}

// Moves returns the client's moves in order
func (s *Server) Moves() []model.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Move(nil), s.moves...)
}

// Result returns the result that was sent
func (s *Server) Result() (model.GameResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return model.GameResult{}, false
	}
	return *s.result, true
}

// ClientClosed returns true if the client closed its protocol element
func (s *Server) ClientClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientDone
}

// Close stops listening
func (s *Server) Close() error {
	return s.listener.Close()
}

func (s *Server) serve() {
	defer close(s.done)

	conn, err := s.listener.Accept()
	if err != nil {
		s.err = err
		return
	}
	defer conn.Close()

	s.err = s.play(conn)
	if s.err != nil {
		s.logger.Error("game failed", slog.String("error", s.err.Error()))
	}
}

// game is the server's view of the match
type game struct {
	conn   net.Conn
	script Script
	board  *board.Board
	color  model.PlayerColor
	rounds int
	over   bool
}

func (s *Server) play(conn net.Conn) error {
	color, err := model.ParsePlayerColor(strings.ToUpper(s.script.Color))
	if err != nil {
		return err
	}
	g := &game{conn: conn, script: s.script, board: startingBoard(s.script.Obstructions), color: color}

	dec := protocol.NewDecoder(conn)
	var pending *model.Move
	for {
		ev, err := dec.Next()
		if err != nil {
			if g.over {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}

		switch {
		case ev.Kind == protocol.EventStart && (ev.Name == "join" || ev.Name == "joinPrepared"):
			s.mu.Lock()
			s.join = &JoinRequest{Element: ev.Name, Attrs: ev.Attrs}
			s.mu.Unlock()
			if err := g.open(); err != nil {
				return err
			}
		case ev.Kind == protocol.EventStart && ev.Name == "data":
			if class, _ := ev.Attr("class"); class == protocol.ClassMove {
				m, err := parseMove(ev)
				if err != nil {
					return err
				}
				pending = &m
			}
		case ev.Kind == protocol.EventStart && ev.Name == "hint" && pending != nil:
			content, _ := ev.Attr("content")
			pending.AddHint(content)
		case ev.Kind == protocol.EventEnd && ev.Name == "room" && pending != nil:
			move := *pending
			pending = nil
			s.mu.Lock()
			s.moves = append(s.moves, move)
			s.mu.Unlock()
			result, err := g.onClientMove(move)
			if err != nil {
				return err
			}
			if result != nil {
				s.mu.Lock()
				s.result = result
				s.mu.Unlock()
			}
		case ev.Kind == protocol.EventEnd && ev.Name == "protocol":
			s.mu.Lock()
			s.clientDone = true
			s.mu.Unlock()
			if !g.over {
				return errors.New("client left before the game was over")
			}
			return nil
		}
	}
}

// open sends the room, the color and the initial board. If the client does
// not start, the opponent moves first.
func (g *game) open() error {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<protocol><joined roomId="%s"/>`, g.script.RoomID)
	fmt.Fprintf(&sb, `<room roomId="%s"><data class="welcomeMessage" color="%s"/></room>`, g.script.RoomID, g.script.Color)
	g.writeState(&sb, nil)
	if g.color != g.board.CurrentPlayer() {
		if _, ok := g.opponentMove(&sb); !ok {
			return errors.New("opponent has no opening move")
		}
	}
	g.writeMoveRequest(&sb)
	return g.send(sb.String())
}

// onClientMove applies the client's move and either answers with the next
// request or finishes the game
func (g *game) onClientMove(move model.Move) (*model.GameResult, error) {
	if err := g.board.PerformMove(move); err != nil {
		return nil, fmt.Errorf("client sent illegal move %s: %w", move, err)
	}
	g.rounds++

	var sb strings.Builder
	g.writeState(&sb, &move)

	if g.rounds < g.script.Rounds {
		if _, ok := g.opponentMove(&sb); ok {
			g.writeMoveRequest(&sb)
			return nil, g.send(sb.String())
		}
	}

	result := g.result()
	g.writeResult(&sb, result)
	sb.WriteString(`</protocol>`)
	g.over = true
	return &result, g.send(sb.String())
}

func (g *game) opponentMove(sb *strings.Builder) (model.Move, bool) {
	moves := g.board.PossibleMoves()
	if len(moves) == 0 {
		return model.Move{}, false
	}
	m := moves[0]
	if err := g.board.PerformMove(m); err != nil {
		return model.Move{}, false
	}
	g.writeState(sb, &m)
	return m, true
}

func (g *game) writeState(sb *strings.Builder, last *model.Move) {
	fmt.Fprintf(sb, `<room roomId="%s"><data class="memento"><state class="state" startPlayerColor="%s" currentPlayerColor="%s" turn="%d">`,
		g.script.RoomID, g.board.StartPlayer(), g.board.CurrentPlayer(), g.board.Turn())
	sb.WriteString(`<red displayName="red" color="RED"/><blue displayName="blue" color="BLUE"/><board><fields>`)
	for x := 0; x < model.BoardSize; x++ {
		for y := 0; y < model.BoardSize; y++ {
			state, _ := g.board.FieldState(x, y)
			fmt.Fprintf(sb, `<field x="%d" y="%d" state="%s"/>`, x, y, state)
		}
	}
	sb.WriteString(`</fields></board>`)
	if last != nil {
		fmt.Fprintf(sb, `<lastMove x="%d" y="%d" direction="%s"/>`, last.X, last.Y, last.Direction)
	}
	sb.WriteString(`</state></data></room>`)
}

func (g *game) writeMoveRequest(sb *strings.Builder) {
	fmt.Fprintf(sb, `<room roomId="%s"><data class="sc.framework.plugins.protocol.MoveRequest"/></room>`, g.script.RoomID)
}

// result ranks by biggest swarm
func (g *game) result() model.GameResult {
	red := len(g.board.BiggestSwarm(model.PlayerRed))
	blue := len(g.board.BiggestSwarm(model.PlayerBlue))

	redPoints, bluePoints := 1.0, 1.0
	var winner *model.Winner
	switch {
	case red > blue:
		redPoints, bluePoints = 2, 0
		winner = &model.Winner{DisplayName: "red", Color: model.PlayerRed}
	case blue > red:
		redPoints, bluePoints = 0, 2
		winner = &model.Winner{DisplayName: "blue", Color: model.PlayerBlue}
	}

	return model.GameResult{
		Scores: []model.Score{
			{Cause: model.CauseRegular, Values: []float64{redPoints, float64(red)}},
			{Cause: model.CauseRegular, Values: []float64{bluePoints, float64(blue)}},
		},
		Winner: winner,
	}
}

func (g *game) writeResult(sb *strings.Builder, result model.GameResult) {
	fmt.Fprintf(sb, `<room roomId="%s"><data class="result"><definition>`, g.script.RoomID)
	sb.WriteString(`<fragment name="Siegpunkte"><aggregation>SUM</aggregation><relevantForRanking>true</relevantForRanking></fragment>`)
	sb.WriteString(`<fragment name="Schwarmgroesse"><aggregation>AVERAGE</aggregation><relevantForRanking>true</relevantForRanking></fragment>`)
	sb.WriteString(`</definition>`)
	for _, sc := range result.Scores {
		fmt.Fprintf(sb, `<score cause="%s" reason="%s">`, sc.Cause, sc.Reason)
		for _, v := range sc.Values {
			sb.WriteString(`<part>` + strconv.FormatFloat(v, 'f', -1, 64) + `</part>`)
		}
		sb.WriteString(`</score>`)
	}
	if result.Winner != nil {
		fmt.Fprintf(sb, `<winner displayName="%s" color="%s"/>`, result.Winner.DisplayName, result.Winner.Color)
	}
	sb.WriteString(`</data></room>`)
}

func (g *game) send(msg string) error {
	if _, err := g.conn.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func parseMove(ev protocol.Event) (model.Move, error) {
	x, err := strconv.Atoi(ev.Attrs["x"])
	if err != nil {
		return model.Move{}, fmt.Errorf("move x: %w", err)
	}
	y, err := strconv.Atoi(ev.Attrs["y"])
	if err != nil {
		return model.Move{}, fmt.Errorf("move y: %w", err)
	}
	dir, err := model.ParseDirection(ev.Attrs["direction"])
	if err != nil {
		return model.Move{}, err
	}
	return model.NewMove(x, y, dir), nil
}

// startingBoard puts red on the left and right edges and blue on the top
// and bottom edges, corners empty
func startingBoard(obstructions [][2]int) *board.Board {
	b := board.New(model.PlayerRed)
	for i := 1; i < model.BoardSize-1; i++ {
		_ = b.SetFieldState(0, i, model.FieldRed)
		_ = b.SetFieldState(model.BoardSize-1, i, model.FieldRed)
		_ = b.SetFieldState(i, 0, model.FieldBlue)
		_ = b.SetFieldState(i, model.BoardSize-1, model.FieldBlue)
	}
	for _, o := range obstructions {
		_ = b.SetFieldState(o[0], o[1], model.FieldObstructed)
	}
	return b
}
