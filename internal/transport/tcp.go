package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/mcoot/piranhas-client/internal/model"
)

const (
	readBufferSize = 4096
	// drainWait is how long Receive waits for more bytes once some arrived
	drainWait = time.Millisecond
)

// TCP is a game server connection. Receive blocks until data arrives and
// then returns everything that is immediately available.
type TCP struct {
	conn net.Conn
	buf  []byte
}

// Dial connects to the game server. A failed connect is not retried.
func Dial(ctx context.Context, host string, port int) (*TCP, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("connect to %s:%d: %w", host, port, err)
	}
	return New(conn), nil
}

// New wraps an established connection
func New(conn net.Conn) *TCP {
	return &TCP{conn: conn, buf: make([]byte, readBufferSize)}
}

// Send writes all of data
func (t *TCP) Send(data []byte) error {
	if _, err := t.conn.Write(data); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Receive blocks for at least one byte and drains whatever else is pending
func (t *TCP) Receive() ([]byte, error) {
	if err := t.conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}

	n, err := t.conn.Read(t.buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, model.ErrConnectionClosed
		}
		return nil, fmt.Errorf("receive: %w", err)
	}
	data := append([]byte(nil), t.buf[:n]...)

	for err == nil {
		if err = t.conn.SetReadDeadline(time.Now().Add(drainWait)); err != nil {
			break
		}
		n, err = t.conn.Read(t.buf)
		data = append(data, t.buf[:n]...)
	}
	// A timeout just means nothing more is pending; EOF and other errors
	// surface on the next call

	return data, nil
}

// Close closes the connection
func (t *TCP) Close() error {
	return t.conn.Close()
}

// RemoteAddr returns the server address
func (t *TCP) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
