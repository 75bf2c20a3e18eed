package lens

import "github.com/optikforge/zmxlink/zmx"

// Standard is the ordinary refracting or reflecting surface type.
type Standard struct {
	Generic
}

var glassPickup = &PickupFormat{Solve: 2}

var standardDefs = mergeDefs(genericDefs, map[string]func(*Base) Field{
	"curvature":           func(b *Base) Field { return newCurvatureParam(b) },
	"glass":               func(b *Base) Field { return newParam(b, 4, Text, 2, glassPickup, 0, false) },
	"semidia":             func(b *Base) Field { return newSemiDiamParam(b) },
	"conic":               func(b *Base) Field { return newParam(b, 6, Float, 4, &PickupFormat{Solve: 2, Scale: true}, 0, true) },
	"coating":             func(b *Base) Field { return plainParam(b, 7, Text) },
	"thermal_expansivity": func(b *Base) Field { return plainParam(b, 8, Float) },
})

// NewStandard wraps an existing labelled surface as a standard surface.
func NewStandard(conn *zmx.Conn, label int32) *Standard {
	s := &Standard{Generic{Base{conn: conn, label: label}}}
	s.defs = standardDefs
	return s
}

func init() {
	Register("STANDARD", func(conn *zmx.Conn, label int32) Surface { return NewStandard(conn, label) })
}

// TypeCode returns the host type string for standard surfaces.
func (s *Standard) TypeCode() string { return "STANDARD" }

// Curvature is the surface curvature, the reciprocal of the radius.
func (s *Standard) Curvature() *CurvatureParam { return newCurvatureParam(&s.Base) }

// Glass is the material name of the following space. Pickups on glass take
// no modifiers at all.
func (s *Standard) Glass() *Param { return newParam(&s.Base, 4, Text, 2, glassPickup, 0, false) }

// SemiDia is the clear semi-diameter.
func (s *Standard) SemiDia() *SemiDiamParam { return newSemiDiamParam(&s.Base) }

// Conic is the conic constant.
func (s *Standard) Conic() *Param {
	return newParam(&s.Base, 6, Float, 4, &PickupFormat{Solve: 2, Scale: true}, 0, true)
}

// Coating is the coating name.
func (s *Standard) Coating() *Param { return plainParam(&s.Base, 7, Text) }

// ThermalExpansivity is the thermal coefficient of expansion.
func (s *Standard) ThermalExpansivity() *Param { return plainParam(&s.Base, 8, Float) }

// SetRectangularAperture installs a rectangular aperture of half-widths
// sx, sy decentered by ox, oy.
func (s *Standard) SetRectangularAperture(sx, sy, ox, oy float64) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	return s.conn.SetAperture(n, 4, sx, sy, ox, oy, "")
}
