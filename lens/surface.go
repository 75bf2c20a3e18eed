package lens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/optikforge/zmxlink/zmx"
)

// Base carries what every surface handle shares: a connection and the
// surface's durable label. Labels survive inserts and deletes elsewhere in
// the model, so a handle stays valid while positions shift underneath it.
type Base struct {
	conn  *zmx.Conn
	label int32
	defs  map[string]func(*Base) Field
}

// Conn returns the connection the handle operates over.
func (b *Base) Conn() *zmx.Conn { return b.conn }

// Label returns the durable label identifying the surface.
func (b *Base) Label() int32 { return b.label }

// Num resolves the label to the surface's current position.
func (b *Base) Num() (int, error) {
	return b.conn.FindLabel(b.label)
}

// Remove deletes the surface from the model. The object surface at position
// 0 cannot be removed.
func (b *Base) Remove() error {
	n, err := b.Num()
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("remove surface %d: %w", n, ErrObjectSurface)
	}
	return b.conn.DeleteSurface(n)
}

// Field looks up a field by name. The names are the ones the surface type
// declares, like "thickness" or "rotate_before_offset".
func (b *Base) Field(name string) (Field, error) {
	def, ok := b.defs[name]
	if !ok {
		return nil, &UnknownFieldError{Name: name}
	}
	return def(b), nil
}

// SetFields assigns several fields by name. Used at creation time; a name no
// field matches aborts with UnknownFieldError.
func (b *Base) SetFields(fields map[string]any) error {
	for name, value := range fields {
		f, err := b.Field(name)
		if err != nil {
			return err
		}
		if err := f.Set(value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

// Surface is a handle on one surface of the model. Concrete types add
// accessors for the fields their surface type defines; Surface itself covers
// what every type shares.
type Surface interface {
	Conn() *zmx.Conn
	Label() int32
	Num() (int, error)
	Remove() error
	Field(name string) (Field, error)
	SetFields(fields map[string]any) error
	TypeCode() string
	Type() *Param
	Comment() *CommentParam
	Thickness() *ThicknessParam
	Ignored() *Param
	FixVariables() ([]int, error)
}

// Factory builds a surface handle of a concrete type around an existing
// label.
type Factory func(conn *zmx.Conn, label int32) Surface

var registry = map[string]Factory{}

// Register associates a surface type code with its handle factory.
// Registration happens in package init; later registrations for the same
// code win.
func Register(typeCode string, f Factory) {
	registry[typeCode] = f
}

// Lookup returns the factory for a type code, falling back to Generic for
// codes with no registered handle.
func Lookup(typeCode string) Factory {
	if f, ok := registry[typeCode]; ok {
		return f
	}
	return func(conn *zmx.Conn, label int32) Surface { return NewGeneric(conn, label) }
}

// Generic is a handle for a surface of any type. It exposes only the fields
// every surface type carries.
type Generic struct {
	Base
}

var genericDefs = map[string]func(*Base) Field{
	"type":      func(b *Base) Field { return plainParam(b, 0, Text) },
	"comment":   func(b *Base) Field { return newCommentParam(b) },
	"thickness": func(b *Base) Field { return newThicknessParam(b) },
	"ignored":   func(b *Base) Field { return plainParam(b, 20, Bool) },
}

// NewGeneric wraps an existing labelled surface without assuming its type.
func NewGeneric(conn *zmx.Conn, label int32) *Generic {
	s := &Generic{Base{conn: conn, label: label}}
	s.defs = genericDefs
	return s
}

// TypeCode returns the type string a newly created surface of this handle
// type is given. Generic handles do not force a type.
func (s *Generic) TypeCode() string { return "" }

// Type is the surface type string field.
func (s *Generic) Type() *Param { return plainParam(&s.Base, 0, Text) }

// Comment is the comment field, tag excluded.
func (s *Generic) Comment() *CommentParam { return newCommentParam(&s.Base) }

// Thickness is the axial gap to the next surface.
func (s *Generic) Thickness() *ThicknessParam { return newThicknessParam(&s.Base) }

// Ignored flags the surface as excluded from ray tracing.
func (s *Generic) Ignored() *Param { return plainParam(&s.Base, 20, Bool) }

// RayIntersect traces a single ray to this surface and returns the
// intersection. h is the normalised field coordinate and p the normalised
// pupil coordinate, so the zero value of both traces the on-axis chief ray.
// wavelength 0 selects the primary wavelength. With global set, the
// intersection point and direction vectors are rotated into the global
// frame.
func (s *Generic) RayIntersect(h, p [2]float64, wavelength int, global bool) (zmx.RayNode, error) {
	n, err := s.Num()
	if err != nil {
		return zmx.RayNode{}, err
	}
	ray, err := s.conn.GetTrace(wavelength, 0, n, h, p)
	if err != nil {
		return zmx.RayNode{}, err
	}
	if global {
		r, offset, err := s.conn.GetGlobalMatrix(n)
		if err != nil {
			return zmx.RayNode{}, err
		}
		ray.Intersect = r.Apply(ray.Intersect).Add(offset)
		ray.ExitCosines = r.Apply(ray.ExitCosines)
		ray.Normal = r.Apply(ray.Normal)
	}
	return ray, nil
}

// FixVariables scans every solve category on the surface and pins the ones
// left adjustable by optimisation. It returns the category codes it fixed.
func (s *Generic) FixVariables() ([]int, error) {
	n, err := s.Num()
	if err != nil {
		return nil, err
	}
	var fixed []int
	for code := 0; code <= 16; code++ {
		raw, err := s.conn.GetSolve(n, code)
		if err != nil {
			return fixed, err
		}
		kind, _, _ := strings.Cut(raw, ",")
		v, err := strconv.ParseFloat(strings.TrimSpace(kind), 64)
		if err != nil {
			return fixed, fmt.Errorf("solve %d: parse %q: %w", code, raw, err)
		}
		if int(v) == 1 {
			if _, err := s.conn.SetSolve(n, code, 0); err != nil {
				return fixed, err
			}
			fixed = append(fixed, code)
		}
	}
	return fixed, nil
}

// IsGlobalReference reports whether this surface is the global coordinate
// reference.
func (s *Generic) IsGlobalReference() (bool, error) {
	n, err := s.Num()
	if err != nil {
		return false, err
	}
	raw, err := s.conn.GetSystemProperty(21)
	if err != nil {
		return false, err
	}
	ref, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false, fmt.Errorf("global reference: parse %q: %w", raw, err)
	}
	return int(ref) == n, nil
}

// MakeGlobalReference makes this surface the global coordinate reference.
func (s *Generic) MakeGlobalReference() error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetSystemProperty(21, n)
	return err
}

// mergeDefs builds a field table from base tables plus overrides. Later maps
// win on name collisions.
func mergeDefs(maps ...map[string]func(*Base) Field) map[string]func(*Base) Field {
	out := make(map[string]func(*Base) Field)
	for _, m := range maps {
		for name, def := range m {
			out[name] = def
		}
	}
	return out
}
