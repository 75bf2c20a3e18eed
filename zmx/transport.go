package zmx

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// Transport is the synchronous request/response channel to the host
// application. Send transmits one command and blocks for the single-line
// response, or until the timeout elapses. Implementations need not be safe
// for concurrent use; the core never overlaps calls on one connection.
type Transport interface {
	Send(cmd string, timeout time.Duration) (string, error)
	Close() error
}

// socketTransport speaks the host's line protocol over a stream socket:
// one command per line out, one response line back.
type socketTransport struct {
	conn net.Conn
	rd   *bufio.Reader
}

// DialTransport connects to the host's extension socket. network is "unix"
// or "tcp".
func DialTransport(network, addr string) (Transport, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, fmt.Errorf("connecting to host: %w", err)
	}
	return &socketTransport{conn: conn, rd: bufio.NewReader(conn)}, nil
}

func (t *socketTransport) Send(cmd string, timeout time.Duration) (string, error) {
	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := t.conn.SetDeadline(deadline); err != nil {
		return "", fmt.Errorf("setting deadline: %w", err)
	}

	if _, err := t.conn.Write([]byte(cmd + "\n")); err != nil {
		return "", fmt.Errorf("sending command: %w", err)
	}

	line, err := t.rd.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *socketTransport) Close() error {
	return t.conn.Close()
}
