// Package zmx implements the command layer of the optics host's extension
// protocol: a synchronous text channel where each request is a comma-separated
// command line and each response is a single line. Conn exposes one method per
// host data item; typed surface/parameter semantics live in package lens.
package zmx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds ordinary round trips. Long-running host operations
// (optimisation, batch traces, report export) take explicit timeouts.
const DefaultTimeout = 2 * time.Minute

// Conn drives one in-memory lens model on the host. Methods mirror the host's
// extension data items. Conn issues one blocking round trip at a time and
// performs no caching: every read is live.
type Conn struct {
	t       Transport
	log     *slog.Logger
	timeout time.Duration
}

// Option configures a Conn.
type Option func(*Conn)

// WithLogger installs a logger; every round trip is logged at Debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Conn) { c.log = log }
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Conn) { c.timeout = d }
}

// NewConn wraps an established transport.
func NewConn(t Transport, opts ...Option) *Conn {
	c := &Conn{t: t, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dial connects to the host and returns a ready Conn.
func Dial(network, addr string, opts ...Option) (*Conn, error) {
	t, err := DialTransport(network, addr)
	if err != nil {
		return nil, err
	}
	return NewConn(t, opts...), nil
}

// Close releases the underlying transport.
func (c *Conn) Close() error {
	return c.t.Close()
}

func (c *Conn) req(cmd string) (string, error) {
	return c.reqTimeout(cmd, c.timeout)
}

func (c *Conn) reqTimeout(cmd string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	if c.log != nil {
		c.log.Debug("send", "cmd", cmd)
	}
	resp, err := c.t.Send(cmd, timeout)
	if err != nil {
		return "", err
	}
	if c.log != nil {
		c.log.Debug("recv", "response", resp)
	}
	if strings.HasPrefix(resp, "BAD COMMAND") {
		return "", &BadCommandError{Command: cmd}
	}
	return strings.TrimRight(resp, "\r\n"), nil
}

// argString renders a command argument the way the host expects: floats in
// 20-digit exponent form, booleans as 0/1, everything else verbatim.
func argString(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%.20E", x)
	case float32:
		return fmt.Sprintf("%.20E", float64(x))
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprint(x)
	}
}

func argList(args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = argString(a)
	}
	return strings.Join(parts, ",")
}

func parseInt(op, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: parsing %q: %w", op, s, err)
	}
	return n, nil
}

func parseFloat(op, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: parsing %q: %w", op, s, err)
	}
	return f, nil
}

// splitFields breaks a comma-separated response into exactly n fields.
func splitFields(op, resp string, n int) ([]string, error) {
	fields := strings.Split(resp, ",")
	if len(fields) != n {
		return nil, fmt.Errorf("%s: expected %d fields, got %d in %q", op, n, len(fields), resp)
	}
	return fields, nil
}

// splitAtLeast splits a comma-separated response and returns nil when fewer
// than min fields are present.
func splitAtLeast(resp string, min int) []string {
	fields := strings.Split(resp, ",")
	if len(fields) < min {
		return nil
	}
	return fields
}

func parseFloatList(op, resp string) ([]float64, error) {
	fields := strings.Split(resp, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(op, f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// errorStatus interprets a response as a numeric error status: zero means
// success, anything else is a host error.
func (c *Conn) errorStatus(op, resp string) error {
	status, err := parseInt(op, resp)
	if err != nil {
		return err
	}
	if status != 0 {
		return &HostError{Op: op, Status: status}
	}
	return nil
}
