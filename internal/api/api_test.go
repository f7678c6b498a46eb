package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/piranhas-client/internal/api"
	"github.com/mcoot/piranhas-client/internal/api/apierr"
	"github.com/mcoot/piranhas-client/internal/api/response"
	"github.com/mcoot/piranhas-client/internal/dependencies/mocks"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/protocol"
	"github.com/mcoot/piranhas-client/internal/services/board"
	"github.com/mcoot/piranhas-client/internal/testutil"
)

// testServer wires the API router to a tracker and hub
type testServer struct {
	handler http.Handler
	tracker *observer.Tracker
	hub     *observer.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	hub := observer.NewHub(logger)
	go hub.Run()
	t.Cleanup(hub.Close)

	tracker := observer.NewTracker(hub, mocks.NewMockClock(time.Unix(0, 0)), logger)
	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Tracker: tracker,
		Hub:     hub,
		Version: "test",
	})

	return &testServer{handler: router, tracker: tracker, hub: hub}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// withBoard feeds a board where blue has a lone corner piece to move
func (ts *testServer) withBoard(t *testing.T) {
	t.Helper()
	b := board.New(model.PlayerRed)
	require.NoError(t, b.SetFieldState(0, 9, model.FieldRed))
	require.NoError(t, b.SetFieldState(3, 0, model.FieldRed))
	require.NoError(t, b.SetFieldState(9, 0, model.FieldBlue))
	require.NoError(t, b.PerformMove(model.NewMove(3, 0, model.DirectionLeft)))
	ts.tracker.OnGameStateUpdated(b)
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	health := decode[response.Health](t, rr)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)
}

func TestGameBeforeFirstState(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "connected", body["phase"])
	assert.NotContains(t, body, "rows")
}

func TestGameAfterState(t *testing.T) {
	ts := newTestServer(t)
	ts.tracker.OnPhaseChanged(protocol.PhaseActive)
	ts.withBoard(t)

	rr := ts.request(http.MethodGet, "/api/v1/game", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "active", body["phase"])
	assert.Equal(t, "BLUE", body["current_player"])
	assert.EqualValues(t, 1, body["turn"])
	rows, ok := body["rows"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, model.BoardSize)
}

func TestMovesWithoutState(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/moves", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNoGameState, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func TestMovesListsLegalMoves(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/moves", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	moves := decode[response.Moves](t, rr)
	assert.Equal(t, model.PlayerBlue, moves.CurrentPlayer)
	assert.ElementsMatch(t, []observer.MoveView{
		{X: 9, Y: 0, Direction: model.DirectionUp},
		{X: 9, Y: 0, Direction: model.DirectionLeft},
		{X: 9, Y: 0, Direction: model.DirectionUpLeft},
	}, moves.Moves)
}

func TestMovesFilteredByOrigin(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/moves?x=2&y=0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[response.Moves](t, rr).Moves)

	rr = ts.request(http.MethodGet, "/api/v1/game/moves?x=9&y=0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[response.Moves](t, rr).Moves, 3)
}

func TestMovesRejectsHalfOrigin(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodGet, "/api/v1/game/moves?x=9", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func TestCheckLegalMove(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/check", map[string]any{"x": 9, "y": 0, "direction": "LEFT"})
	require.Equal(t, http.StatusOK, rr.Code)

	check := decode[response.CheckMove](t, rr)
	assert.True(t, check.Legal)
	require.NotNil(t, check.Destination)
	assert.Equal(t, response.Coordinate{X: 7, Y: 0}, *check.Destination)
}

func TestCheckIllegalMove(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/check", map[string]any{"x": 2, "y": 0, "direction": "RIGHT"})
	require.Equal(t, http.StatusOK, rr.Code)

	check := decode[response.CheckMove](t, rr)
	assert.False(t, check.Legal)
	assert.Contains(t, check.Reason, model.ErrNotOwnPiece.Error())
	assert.Nil(t, check.Destination)
}

func TestCheckRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)
	ts.withBoard(t)

	rr := ts.request(http.MethodPost, "/api/v1/game/check", map[string]any{"x": 9, "y": 0, "direction": "SIDEWAYS"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidDirection, decode[apierr.ErrorResponse](t, rr).Error.Code)

	rr = ts.request(http.MethodPost, "/api/v1/game/check", map[string]any{"x": 10, "y": 0, "direction": "UP"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPosition, decode[apierr.ErrorResponse](t, rr).Error.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/game/check", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEventsStreamsUpdates(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() observer.Message {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg observer.Message
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	assert.Equal(t, observer.EventState, read().Type)

	require.Eventually(t, func() bool { return ts.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	ts.tracker.OnPhaseChanged(protocol.PhaseJoined)

	assert.Equal(t, observer.EventPhase, read().Type)
}

func TestEventsRouteNeedsHub(t *testing.T) {
	logger := testutil.NopLogger()
	router := api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Tracker: observer.NewTracker(nil, mocks.NewMockClock(time.Unix(0, 0)), logger),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
