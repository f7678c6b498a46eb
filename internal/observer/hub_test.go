package observer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/piranhas-client/internal/dependencies/mocks"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/services/board"
	"github.com/mcoot/piranhas-client/internal/testutil"
)

type HubSuite struct {
	suite.Suite
	hub    *Hub
	server *httptest.Server
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.hub = NewHub(logger)
	go s.hub.Run()

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(w, r, s.hub, []byte(`{"type":"hello"}`), logger)
	}))
}

func (s *HubSuite) TearDownTest() {
	s.server.Close()
	s.hub.Close()
}

func (s *HubSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *HubSuite) read(conn *websocket.Conn) Message {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	s.Require().NoError(err)

	var msg Message
	s.Require().NoError(json.Unmarshal(data, &msg))
	return msg
}

func (s *HubSuite) TestInitialMessageThenBroadcast() {
	conn := s.dial()
	defer conn.Close()

	s.Equal("hello", s.read(conn).Type)

	s.Eventually(func() bool { return s.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	s.hub.BroadcastEvent(EventEnded, nil)

	s.Equal(EventEnded, s.read(conn).Type)
}

func (s *HubSuite) TestTrackerPublishesState() {
	conn := s.dial()
	defer conn.Close()
	s.read(conn)
	s.Eventually(func() bool { return s.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	tracker := NewTracker(s.hub, mocks.NewMockClock(time.Unix(0, 0)), testutil.NopLogger())
	tracker.OnGameStateUpdated(board.New(model.PlayerBlue))

	msg := s.read(conn)
	s.Equal(EventState, msg.Type)
	data, ok := msg.Data.(map[string]any)
	s.Require().True(ok)
	s.Equal("BLUE", data["current_player"])
}

func (s *HubSuite) TestClientDisconnectUnregisters() {
	conn := s.dial()
	s.read(conn)
	s.Eventually(func() bool { return s.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	s.Require().NoError(conn.Close())
	s.Eventually(func() bool { return s.hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func (s *HubSuite) TestCloseDisconnectsClients() {
	conn := s.dial()
	defer conn.Close()
	s.read(conn)
	s.Eventually(func() bool { return s.hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	s.hub.Close()

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := conn.ReadMessage()
	s.Error(err)
	s.Equal(0, s.hub.ClientCount())
}
