package protocol

import (
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
)

// fakeTransport replays canned chunks and records everything sent
type fakeTransport struct {
	chunks  [][]byte
	sent    []string
	sendErr error
}

func newFakeTransport(chunks ...string) *fakeTransport {
	t := &fakeTransport{}
	for _, c := range chunks {
		t.chunks = append(t.chunks, []byte(c))
	}
	return t
}

func (t *fakeTransport) Send(data []byte) error {
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, string(data))
	return nil
}

func (t *fakeTransport) Receive() ([]byte, error) {
	if len(t.chunks) == 0 {
		return nil, model.ErrConnectionClosed
	}
	c := t.chunks[0]
	t.chunks = t.chunks[1:]
	return c, nil
}

// fakeLogic answers move requests with a fixed move and records callbacks
type fakeLogic struct {
	color    model.PlayerColor
	move     *model.Move
	requests []*board.Board
	states   []*board.Board
	results  []model.GameResult
	ended    int
}

func (l *fakeLogic) OnGameEnded() {
	l.ended++
}

func (l *fakeLogic) OnGameResultReceived(result model.GameResult) {
	l.results = append(l.results, result)
}

func (l *fakeLogic) OnGameStateUpdated(snapshot *board.Board) {
	l.states = append(l.states, snapshot)
}

func (l *fakeLogic) OnMoveRequested(snapshot *board.Board) *model.Move {
	l.requests = append(l.requests, snapshot)
	if l.move == nil {
		return nil
	}
	m := l.move.Clone()
	return &m
}

// recordingObserver also listens for lifecycle changes
type recordingObserver struct {
	phases  []Phase
	colors  []model.PlayerColor
	states  int
	results int
	ended   int
}

func (o *recordingObserver) OnGameEnded() {
	o.ended++
}

func (o *recordingObserver) OnGameResultReceived(model.GameResult) {
	o.results++
}

func (o *recordingObserver) OnGameStateUpdated(*board.Board) {
	o.states++
}

func (o *recordingObserver) OnPhaseChanged(phase Phase) {
	o.phases = append(o.phases, phase)
}

func (o *recordingObserver) OnColorAssigned(color model.PlayerColor) {
	o.colors = append(o.colors, color)
}
