package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/piranhas-client/internal/api"
	"github.com/mcoot/piranhas-client/internal/dependencies/mocks"
	"github.com/mcoot/piranhas-client/internal/model"
	"github.com/mcoot/piranhas-client/internal/observer"
	"github.com/mcoot/piranhas-client/internal/services/board"
	"github.com/mcoot/piranhas-client/internal/testutil"
	"github.com/mcoot/piranhas-client/internal/testutil/gameserver"
)

type RootSuite struct {
	suite.Suite
	ctx context.Context
}

func TestRootSuite(t *testing.T) {
	suite.Run(t, new(RootSuite))
}

func (s *RootSuite) SetupTest() {
	s.T().Setenv("PIRANHAS_STATUS_ADDR", "")
	s.T().Setenv("PIRANHAS_CACHE", "")
	var cancel context.CancelFunc
	s.ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	s.T().Cleanup(cancel)
}

// execute runs the root command and returns stdout and stderr
func (s *RootSuite) execute(args ...string) (string, string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(s.ctx)
	return stdout.String(), stderr.String(), err
}

func (s *RootSuite) startServer(script gameserver.Script) *gameserver.Server {
	server, err := gameserver.Start(script, testutil.NopLogger())
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = server.Close() })
	return server
}

func (s *RootSuite) TestPlaysGameToTheEnd() {
	server := s.startServer(gameserver.DefaultScript())

	stdout, _, err := s.execute(
		"--port", strconv.Itoa(server.Port()),
		"--strategy", "swarm",
		"--seed", "1",
		"--log-level", "error",
		"--output", "json",
	)
	s.Require().NoError(err)

	var summary Summary
	s.Require().NoError(json.Unmarshal([]byte(stdout), &summary))
	s.Equal("ended", summary.Phase)
	s.Equal("R1", summary.RoomID)
	s.Equal("RED", summary.Color)
	s.Equal(5, summary.Turn)
	s.Require().NotNil(summary.Result)
	s.Len(summary.Result.Scores, 2)
	s.Empty(summary.Error)

	<-server.Done()
	s.NoError(server.Err())
	s.Len(server.Moves(), 3)
}

func (s *RootSuite) TestPlaysWithStatusServer() {
	script := gameserver.DefaultScript()
	script.Rounds = 1
	server := s.startServer(script)

	stdout, _, err := s.execute(
		"--port", strconv.Itoa(server.Port()),
		"--status-addr", "127.0.0.1:0",
		"--log-level", "error",
	)
	s.Require().NoError(err)
	s.Contains(stdout, "Phase: ended")
	s.Contains(stdout, "Result:")
}

func (s *RootSuite) TestConnectionRefused() {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	port := listener.Addr().(*net.TCPAddr).Port
	s.Require().NoError(listener.Close())

	_, stderr, err := s.execute("--port", strconv.Itoa(port), "--log-level", "error")
	s.Require().Error(err)
	s.Contains(err.Error(), "connect")
	s.Contains(stderr, "Error:")
}

func (s *RootSuite) TestInvalidFlags() {
	_, _, err := s.execute("--port", "0", "--strategy", "minimax")
	s.Require().Error(err)
	s.ErrorIs(err, model.ErrUnknownStrategy)
}

func (s *RootSuite) TestVersion() {
	stdout, _, err := s.execute("--version")
	s.Require().NoError(err)
	s.Contains(stdout, Version)
}

// statusServer serves the status API for a tracker that has seen a board
func (s *RootSuite) statusServer() *httptest.Server {
	logger := testutil.NopLogger()
	tracker := observer.NewTracker(nil, mocks.NewMockClock(time.Unix(0, 0)), logger)
	b := board.New(model.PlayerRed)
	s.Require().NoError(b.SetFieldState(0, 4, model.FieldRed))
	s.Require().NoError(b.SetFieldState(9, 4, model.FieldBlue))
	tracker.OnColorAssigned(model.PlayerRed)
	tracker.OnGameStateUpdated(b)

	server := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:  logger,
		Tracker: tracker,
		Version: Version,
	}))
	s.T().Cleanup(server.Close)
	return server
}

func (s *RootSuite) TestStatusCommand() {
	server := s.statusServer()

	stdout, _, err := s.execute("status", "--status-addr", server.URL, "--moves")
	s.Require().NoError(err)
	s.Contains(stdout, "Color: RED")
	s.Contains(stdout, "RED to move")
	s.Contains(stdout, "Legal moves for RED")
	s.Contains(stdout, "(0,4) RIGHT")
}

func (s *RootSuite) TestStatusCommandJSON() {
	server := s.statusServer()

	stdout, _, err := s.execute("status", "--status-addr", server.URL, "-o", "json")
	s.Require().NoError(err)

	var status GameStatus
	s.Require().NoError(json.Unmarshal([]byte(stdout), &status))
	s.Equal("RED", status.CurrentPlayer)
	s.Len(status.Rows, model.BoardSize)
	s.Equal("RED", status.Rows[model.BoardSize-1-4][0])
}

func (s *RootSuite) TestStatusRequiresAddr() {
	_, _, err := s.execute("status")
	s.ErrorIs(err, errNoStatusAddr)
}

func (s *RootSuite) TestHealthCommand() {
	server := s.statusServer()

	stdout, _, err := s.execute("health", "--status-addr", server.URL)
	s.Require().NoError(err)
	s.Contains(stdout, "Status: ok (version 1.2.0)")
}
