package lens

import "github.com/optikforge/zmxlink/zmx"

// Toroidal is a surface with distinct curvatures in x and y, described by a
// base curve swept about an offset axis.
type Toroidal struct {
	Standard
}

var toroidalDefs = mergeDefs(standardDefs, map[string]func(*Base) Field{
	"radius_of_rotation": func(b *Base) Field { return newAuxParam(b, 1, Float) },
	"num_poly_terms":     func(b *Base) Field { return newExtraParam(b, 1, Int) },
	"norm_radius":        func(b *Base) Field { return newExtraParam(b, 2, Float) },
})

func NewToroidal(conn *zmx.Conn, label int32) *Toroidal {
	s := &Toroidal{Standard{Generic{Base{conn: conn, label: label}}}}
	s.defs = toroidalDefs
	return s
}

func init() {
	Register("TOROIDAL", func(conn *zmx.Conn, label int32) Surface { return NewToroidal(conn, label) })
}

func (s *Toroidal) TypeCode() string { return "TOROIDAL" }

// RadiusOfRotation is the distance from the vertex to the sweep axis.
func (s *Toroidal) RadiusOfRotation() *AuxParam { return newAuxParam(&s.Base, 1, Float) }

// NumPolyTerms is the number of polynomial terms in the base curve.
func (s *Toroidal) NumPolyTerms() *Param { return newExtraParam(&s.Base, 1, Int) }

// NormRadius is the normalisation radius for the polynomial terms.
func (s *Toroidal) NormRadius() *Param { return newExtraParam(&s.Base, 2, Float) }

// Grating is a standard surface with straight, equally spaced diffraction
// grooves.
type Grating struct {
	Standard
}

var gratingDefs = mergeDefs(standardDefs, map[string]func(*Base) Field{
	"groove_freq": func(b *Base) Field { return newAuxParam(b, 1, Float) },
	"order":       func(b *Base) Field { return newAuxParam(b, 2, Float) },
})

func NewGrating(conn *zmx.Conn, label int32) *Grating {
	s := &Grating{Standard{Generic{Base{conn: conn, label: label}}}}
	s.defs = gratingDefs
	return s
}

func init() {
	Register("DGRATING", func(conn *zmx.Conn, label int32) Surface { return NewGrating(conn, label) })
}

func (s *Grating) TypeCode() string { return "DGRATING" }

// GrooveFreq is the groove frequency in lines per micron.
func (s *Grating) GrooveFreq() *AuxParam { return newAuxParam(&s.Base, 1, Float) }

// Order is the diffraction order.
func (s *Grating) Order() *AuxParam { return newAuxParam(&s.Base, 2, Float) }

// GeneralisedFresnel is a Fresnel surface with a polynomial phase profile on
// an arbitrary substrate.
type GeneralisedFresnel struct {
	Standard
}

var genFresnelDefs = mergeDefs(standardDefs, map[string]func(*Base) Field{
	"num_poly_terms": func(b *Base) Field { return newExtraParam(b, 1, Int) },
	"norm_radius":    func(b *Base) Field { return newExtraParam(b, 2, Float) },
	"x1y0":           func(b *Base) Field { return newExtraParam(b, 3, Float) },
	"x0y1":           func(b *Base) Field { return newExtraParam(b, 4, Float) },
})

func NewGeneralisedFresnel(conn *zmx.Conn, label int32) *GeneralisedFresnel {
	s := &GeneralisedFresnel{Standard{Generic{Base{conn: conn, label: label}}}}
	s.defs = genFresnelDefs
	return s
}

func init() {
	Register("GEN_FRES", func(conn *zmx.Conn, label int32) Surface { return NewGeneralisedFresnel(conn, label) })
}

func (s *GeneralisedFresnel) TypeCode() string { return "GEN_FRES" }

// NumPolyTerms is the number of polynomial phase terms.
func (s *GeneralisedFresnel) NumPolyTerms() *Param { return newExtraParam(&s.Base, 1, Int) }

// NormRadius is the normalisation radius for the polynomial terms.
func (s *GeneralisedFresnel) NormRadius() *Param { return newExtraParam(&s.Base, 2, Float) }

// X1Y0 is the linear x phase coefficient.
func (s *GeneralisedFresnel) X1Y0() *Param { return newExtraParam(&s.Base, 3, Float) }

// X0Y1 is the linear y phase coefficient.
func (s *GeneralisedFresnel) X0Y1() *Param { return newExtraParam(&s.Base, 4, Float) }

// RetroReflect reverses incident rays when its glass is a mirror. It has no
// curvature or conic of its own.
type RetroReflect struct {
	Generic
}

var retroReflectDefs = mergeDefs(genericDefs, map[string]func(*Base) Field{
	"glass":               func(b *Base) Field { return newParam(b, 4, Text, 2, glassPickup, 0, false) },
	"semidia":             func(b *Base) Field { return newSemiDiamParam(b) },
	"coating":             func(b *Base) Field { return plainParam(b, 7, Text) },
	"thermal_expansivity": func(b *Base) Field { return plainParam(b, 8, Float) },
})

func NewRetroReflect(conn *zmx.Conn, label int32) *RetroReflect {
	s := &RetroReflect{Generic{Base{conn: conn, label: label}}}
	s.defs = retroReflectDefs
	return s
}

func init() {
	Register("RETROREF", func(conn *zmx.Conn, label int32) Surface { return NewRetroReflect(conn, label) })
}

func (s *RetroReflect) TypeCode() string { return "RETROREF" }

// Glass is the material name. "MIRROR" makes the surface retroreflective.
func (s *RetroReflect) Glass() *Param { return newParam(&s.Base, 4, Text, 2, glassPickup, 0, false) }

// SemiDia is the clear semi-diameter.
func (s *RetroReflect) SemiDia() *SemiDiamParam { return newSemiDiamParam(&s.Base) }

// Coating is the coating name.
func (s *RetroReflect) Coating() *Param { return plainParam(&s.Base, 7, Text) }

// ThermalExpansivity is the thermal coefficient of expansion.
func (s *RetroReflect) ThermalExpansivity() *Param { return plainParam(&s.Base, 8, Float) }
