package zmx

import (
	"errors"
	"fmt"
)

// Sentinel errors for the host failure taxonomy. Callers are expected to
// distinguish them with errors.Is so that "geometry is physically invalid"
// never reads as "I/O failed" or "protocol violation".
var (
	// ErrBadCommand indicates the host rejected a command as malformed.
	ErrBadCommand = errors.New("bad command")

	// ErrUntraceable indicates a recoverable host condition: the current
	// geometry cannot be traced or an optimisation failed to converge.
	ErrUntraceable = errors.New("system untraceable")
)

// BadCommandError reports a command the host refused to parse.
type BadCommandError struct {
	Command string
}

func (e *BadCommandError) Error() string {
	return fmt.Sprintf("host rejected command %q", e.Command)
}

func (e *BadCommandError) Unwrap() error { return ErrBadCommand }

// LabelNotFoundError reports a surface label lookup that matched no live
// surface. It is distinct from a zero/absent label by construction.
type LabelNotFoundError struct {
	Label int32
}

func (e *LabelNotFoundError) Error() string {
	return fmt.Sprintf("no surface with label %d", e.Label)
}

// UntraceableError carries the host's nonzero trace status.
type UntraceableError struct {
	Status int
}

func (e *UntraceableError) Error() string {
	return fmt.Sprintf("untraceable: host status %d", e.Status)
}

func (e *UntraceableError) Unwrap() error { return ErrUntraceable }

// FileIOError reports the host's -999 status on load/save operations.
type FileIOError struct {
	Op   string
	Path string
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("%s: host cannot access file %q", e.Op, e.Path)
}

// HostError reports any other nonzero error status returned by a host
// operation.
type HostError struct {
	Op     string
	Status int
}

func (e *HostError) Error() string {
	return fmt.Sprintf("%s signalled an error: %d", e.Op, e.Status)
}
