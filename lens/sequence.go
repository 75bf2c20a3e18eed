package lens

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/optikforge/zmxlink/zmx"
)

// SurfaceSequence views the model's surface list as a sequence. Indexes
// follow list conventions: negative values count from the end, so -1 is the
// image surface. Surfaces gain a random label on first access and handles
// hold the label, not the position.
type SurfaceSequence struct {
	conn *zmx.Conn
}

func randLabel() int32 {
	return rand.Int32N(math.MaxInt32) + 1
}

// NewSequence wraps the current model. Duplicate labels, which occur in some
// sample files, are repaired by relabelling the later occurrence.
func NewSequence(conn *zmx.Conn) (*SurfaceSequence, error) {
	q := &SurfaceSequence{conn: conn}
	if err := q.enforceLabelUniqueness(); err != nil {
		return nil, err
	}
	return q, nil
}

// NewEmptySequence wraps the current model after deleting every surface
// between the object and image planes.
func NewEmptySequence(conn *zmx.Conn) (*SurfaceSequence, error) {
	q := &SurfaceSequence{conn: conn}
	for {
		n, err := q.Len()
		if err != nil {
			return nil, err
		}
		if n <= 2 {
			break
		}
		if err := conn.DeleteSurface(1); err != nil {
			return nil, err
		}
	}
	if err := q.enforceLabelUniqueness(); err != nil {
		return nil, err
	}
	return q, nil
}

// Refresh reloads the model from the host's editor before wrapping it.
func (q *SurfaceSequence) Refresh() error {
	return q.conn.GetRefresh()
}

// Len returns the number of surfaces including the object and image planes.
func (q *SurfaceSequence) Len() (int, error) {
	sys, err := q.conn.GetSystem()
	if err != nil {
		return 0, err
	}
	return sys.NumSurfs + 1, nil
}

// translate maps a sequence index to a surface number. Negative indexes
// count from the end and underflow clamps to the object surface, matching
// list slicing conventions.
func (q *SurfaceSequence) translate(i int) (int, error) {
	if i >= 0 {
		return i, nil
	}
	n, err := q.Len()
	if err != nil {
		return 0, err
	}
	i += n
	if i < 0 {
		i = 0
	}
	return i, nil
}

// At returns a typed handle on the surface at index i. The surface is
// labelled first if it has no label yet, and the handle's concrete type
// follows the surface's type string.
func (q *SurfaceSequence) At(i int) (Surface, error) {
	n, err := q.translate(i)
	if err != nil {
		return nil, err
	}
	label, err := q.conn.GetLabel(n)
	if err != nil {
		return nil, err
	}
	if label == 0 {
		label = randLabel()
		if err := q.conn.SetLabel(n, label); err != nil {
			return nil, err
		}
	}
	typeCode, err := q.conn.GetSurfaceData(n, 0)
	if err != nil {
		return nil, err
	}
	return Lookup(typeCode)(q.conn, label), nil
}

// Delete removes the surface at index i. The object surface cannot be
// deleted.
func (q *SurfaceSequence) Delete(i int) error {
	n, err := q.translate(i)
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("delete surface %d: %w", n, ErrObjectSurface)
	}
	return q.conn.DeleteSurface(n)
}

// InsertNew creates a surface of the factory's type before index i and
// assigns the given fields. Index 1 inserts directly after the object
// surface and -1 before the image surface; inserting before the object
// surface is not possible.
func (q *SurfaceSequence) InsertNew(i int, f Factory, fields map[string]any) (Surface, error) {
	n, err := q.translate(i)
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("insert at %d: %w", n, ErrObjectSurface)
	}
	if err := q.conn.InsertSurface(n); err != nil {
		return nil, err
	}
	label := randLabel()
	if err := q.conn.SetLabel(n, label); err != nil {
		return nil, err
	}
	surf := f(q.conn, label)
	if tc := surf.TypeCode(); tc != "" {
		if _, err := q.conn.SetSurfaceData(n, 0, tc); err != nil {
			return nil, err
		}
	}
	if err := surf.SetFields(fields); err != nil {
		return nil, err
	}
	return surf, nil
}

// AppendNew creates a surface of the factory's type immediately before the
// image surface.
func (q *SurfaceSequence) AppendNew(f Factory, fields map[string]any) (Surface, error) {
	return q.InsertNew(-1, f, fields)
}

// All returns handles on every surface, object and image planes included.
// The length is taken once up front, so surfaces added or removed during
// the walk are not reflected.
func (q *SurfaceSequence) All() ([]Surface, error) {
	n, err := q.Len()
	if err != nil {
		return nil, err
	}
	out := make([]Surface, 0, n)
	for i := 0; i < n; i++ {
		s, err := q.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// enforceLabelUniqueness walks the model and relabels the second and later
// occurrences of any duplicated label.
func (q *SurfaceSequence) enforceLabelUniqueness() error {
	n, err := q.Len()
	if err != nil {
		return err
	}
	seen := make(map[int32]bool, n)
	for i := 0; i < n; i++ {
		label, err := q.conn.GetLabel(i)
		if err != nil {
			return err
		}
		if seen[label] {
			label = randLabel()
			if err := q.conn.SetLabel(i, label); err != nil {
				return err
			}
		}
		seen[label] = true
	}
	return nil
}
