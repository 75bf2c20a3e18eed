package zmxtest

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// Serve answers the line protocol on l until the listener is closed. Each
// connection carries one command per line and gets one response line back,
// so a host can be exercised through a real socket transport instead of
// in-process calls.
func (h *Host) Serve(l net.Listener) {
	for {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		go h.serveConn(conn)
	}
}

func (h *Host) serveConn(c net.Conn) {
	defer c.Close()
	sc := bufio.NewScanner(c)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		resp, err := h.Send(line, 0)
		if err != nil {
			return
		}
		if _, err := fmt.Fprintf(c, "%s\n", resp); err != nil {
			return
		}
	}
}
