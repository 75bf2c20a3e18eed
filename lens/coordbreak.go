package lens

import (
	"fmt"

	"github.com/optikforge/zmxlink/zmx"
)

// CoordinateBreak is the dummy surface type that re-orients the local
// coordinate frame: an x/y decenter plus rotations about the three axes,
// applied in an order chosen by the RotateBeforeOffset flag.
type CoordinateBreak struct {
	Generic
}

var coordBreakDefs = mergeDefs(genericDefs, map[string]func(*Base) Field{
	"offset_x":             func(b *Base) Field { return newAuxParam(b, 1, Float) },
	"offset_y":             func(b *Base) Field { return newAuxParam(b, 2, Float) },
	"rotate_x":             func(b *Base) Field { return newAuxParam(b, 3, Float) },
	"rotate_y":             func(b *Base) Field { return newAuxParam(b, 4, Float) },
	"rotate_z":             func(b *Base) Field { return newAuxParam(b, 5, Float) },
	"rotate_before_offset": func(b *Base) Field { return newAuxParam(b, 6, Bool) },
})

// NewCoordinateBreak wraps an existing labelled surface as a coordinate
// break.
func NewCoordinateBreak(conn *zmx.Conn, label int32) *CoordinateBreak {
	s := &CoordinateBreak{Generic{Base{conn: conn, label: label}}}
	s.defs = coordBreakDefs
	return s
}

func init() {
	Register("COORDBRK", func(conn *zmx.Conn, label int32) Surface { return NewCoordinateBreak(conn, label) })
}

// TypeCode returns the host type string for coordinate breaks.
func (s *CoordinateBreak) TypeCode() string { return "COORDBRK" }

// OffsetX is the x decenter.
func (s *CoordinateBreak) OffsetX() *AuxParam { return newAuxParam(&s.Base, 1, Float) }

// OffsetY is the y decenter.
func (s *CoordinateBreak) OffsetY() *AuxParam { return newAuxParam(&s.Base, 2, Float) }

// RotateX is the rotation about x in degrees.
func (s *CoordinateBreak) RotateX() *AuxParam { return newAuxParam(&s.Base, 3, Float) }

// RotateY is the rotation about y in degrees.
func (s *CoordinateBreak) RotateY() *AuxParam { return newAuxParam(&s.Base, 4, Float) }

// RotateZ is the rotation about z in degrees.
func (s *CoordinateBreak) RotateZ() *AuxParam { return newAuxParam(&s.Base, 5, Float) }

// RotateBeforeOffset selects the transform order: false applies the decenter
// then the rotations, true the reverse with the rotations composed in the
// opposite order.
func (s *CoordinateBreak) RotateBeforeOffset() *AuxParam { return newAuxParam(&s.Base, 6, Bool) }

// ReturnTo installs a coordinate return chasing the frame of surf. offsetXY
// restores the lateral offsets; offsetZ additionally restores the axial
// position. Restoring z without xy is not a mode the host has.
func (s *CoordinateBreak) ReturnTo(surf Surface, offsetXY, offsetZ bool) error {
	var code int
	switch {
	case !offsetXY && !offsetZ:
		code = 1
	case offsetXY && !offsetZ:
		code = 2
	case offsetXY && offsetZ:
		code = 3
	default:
		return fmt.Errorf("coordinate return cannot restore z without xy")
	}
	n, err := s.Num()
	if err != nil {
		return err
	}
	target, err := surf.Num()
	if err != nil {
		return err
	}
	if _, err := s.conn.SetSurfaceData(n, 81, target); err != nil {
		return err
	}
	_, err = s.conn.SetSurfaceData(n, 80, code)
	return err
}

// ClearReturn removes any coordinate return from the surface.
func (s *CoordinateBreak) ClearReturn() error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetSurfaceData(n, 80, 0)
	return err
}
