package transport

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/piranhas-client/internal/model"
)

type TCPSuite struct {
	suite.Suite
	listener net.Listener
	server   chan net.Conn
	client   *TCP
}

func TestTCPSuite(t *testing.T) {
	suite.Run(t, new(TCPSuite))
}

func (s *TCPSuite) SetupTest() {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	s.listener = listener

	s.server = make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			s.server <- conn
		}
	}()

	addr := listener.Addr().(*net.TCPAddr)
	client, err := Dial(context.Background(), "127.0.0.1", addr.Port)
	s.Require().NoError(err)
	s.client = client
}

func (s *TCPSuite) TearDownTest() {
	_ = s.client.Close()
	_ = s.listener.Close()
}

func (s *TCPSuite) TestSendReachesServer() {
	conn := <-s.server
	defer conn.Close()

	s.Require().NoError(s.client.Send([]byte("<protocol>")))

	buf := make([]byte, len("<protocol>"))
	_, err := io.ReadFull(conn, buf)
	s.Require().NoError(err)
	s.Equal("<protocol>", string(buf))
}

func (s *TCPSuite) TestReceiveReturnsAvailableBytes() {
	conn := <-s.server
	defer conn.Close()

	_, err := conn.Write([]byte(`<joined roomId="R1"/>`))
	s.Require().NoError(err)

	var got []byte
	for len(got) < len(`<joined roomId="R1"/>`) {
		chunk, err := s.client.Receive()
		s.Require().NoError(err)
		s.NotEmpty(chunk)
		got = append(got, chunk...)
	}
	s.Equal(`<joined roomId="R1"/>`, string(got))
}

func (s *TCPSuite) TestReceiveAfterServerCloses() {
	conn := <-s.server
	_, err := conn.Write([]byte("<left/>"))
	s.Require().NoError(err)
	s.Require().NoError(conn.Close())

	var got []byte
	for {
		chunk, err := s.client.Receive()
		if err != nil {
			s.ErrorIs(err, model.ErrConnectionClosed)
			break
		}
		got = append(got, chunk...)
	}
	s.Equal("<left/>", string(got))
}

func (s *TCPSuite) TestDialFailure() {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	port := listener.Addr().(*net.TCPAddr).Port
	s.Require().NoError(listener.Close())

	_, err = Dial(context.Background(), "127.0.0.1", port)
	s.Require().Error(err)
	s.Contains(err.Error(), strconv.Itoa(port))
}
