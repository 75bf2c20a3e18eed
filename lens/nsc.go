package lens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/optikforge/zmxlink/zmx"
)

// NonSequentialComponent is the surface type that embeds a non-sequential
// group in a sequential model. Objects inside the group have no labels of
// their own, so they are addressed by slot number throughout.
type NonSequentialComponent struct {
	Generic
}

var nscDefs = mergeDefs(genericDefs, map[string]func(*Base) Field{
	"draw_ports":           func(b *Base) Field { return newAuxParam(b, 0, Float) },
	"offset_x":             func(b *Base) Field { return newAuxParam(b, 1, Float) },
	"offset_y":             func(b *Base) Field { return newAuxParam(b, 2, Float) },
	"offset_z":             func(b *Base) Field { return newAuxParam(b, 3, Float) },
	"rotate_x":             func(b *Base) Field { return newAuxParam(b, 4, Float) },
	"rotate_y":             func(b *Base) Field { return newAuxParam(b, 5, Float) },
	"rotate_z":             func(b *Base) Field { return newAuxParam(b, 6, Float) },
	"rotate_before_offset": func(b *Base) Field { return newAuxParam(b, 7, Bool) },
	"reverse_rays":         func(b *Base) Field { return newAuxParam(b, 8, Bool) },
})

// NewNonSequentialComponent wraps an existing labelled surface as a
// non-sequential group.
func NewNonSequentialComponent(conn *zmx.Conn, label int32) *NonSequentialComponent {
	s := &NonSequentialComponent{Generic{Base{conn: conn, label: label}}}
	s.defs = nscDefs
	return s
}

func init() {
	Register("NONSEQCO", func(conn *zmx.Conn, label int32) Surface { return NewNonSequentialComponent(conn, label) })
}

// TypeCode returns the host type string for non-sequential groups.
func (s *NonSequentialComponent) TypeCode() string { return "NONSEQCO" }

// DrawPorts controls drawing of the entry and exit ports.
func (s *NonSequentialComponent) DrawPorts() *AuxParam { return newAuxParam(&s.Base, 0, Float) }

// OffsetX is the x offset of the entry port.
func (s *NonSequentialComponent) OffsetX() *AuxParam { return newAuxParam(&s.Base, 1, Float) }

// OffsetY is the y offset of the entry port.
func (s *NonSequentialComponent) OffsetY() *AuxParam { return newAuxParam(&s.Base, 2, Float) }

// OffsetZ is the z offset of the entry port.
func (s *NonSequentialComponent) OffsetZ() *AuxParam { return newAuxParam(&s.Base, 3, Float) }

// RotateX is the entry port rotation about x in degrees.
func (s *NonSequentialComponent) RotateX() *AuxParam { return newAuxParam(&s.Base, 4, Float) }

// RotateY is the entry port rotation about y in degrees.
func (s *NonSequentialComponent) RotateY() *AuxParam { return newAuxParam(&s.Base, 5, Float) }

// RotateZ is the entry port rotation about z in degrees.
func (s *NonSequentialComponent) RotateZ() *AuxParam { return newAuxParam(&s.Base, 6, Float) }

// RotateBeforeOffset selects the entry port transform order.
func (s *NonSequentialComponent) RotateBeforeOffset() *AuxParam { return newAuxParam(&s.Base, 7, Bool) }

// ReverseRays reverses ray propagation through the group.
func (s *NonSequentialComponent) ReverseRays() *AuxParam { return newAuxParam(&s.Base, 8, Bool) }

// ObjectCount returns the number of objects in the group.
func (s *NonSequentialComponent) ObjectCount() (int, error) {
	n, err := s.Num()
	if err != nil {
		return 0, err
	}
	return s.conn.GetNSCData(n, 0)
}

// ObjectType returns the type string of the object in slot.
func (s *NonSequentialComponent) ObjectType(slot int) (string, error) {
	n, err := s.Num()
	if err != nil {
		return "", err
	}
	return s.conn.GetNSCProperty(n, slot, 0, 0)
}

// ObjectParam reads one numbered parameter of an object.
func (s *NonSequentialComponent) ObjectParam(slot, param int) (float64, error) {
	n, err := s.Num()
	if err != nil {
		return 0, err
	}
	raw, err := s.conn.GetNSCParameter(n, slot, param)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("object %d param %d: parse %q: %w", slot, param, raw, err)
	}
	return v, nil
}

// SetObjectParam writes one numbered parameter of an object.
func (s *NonSequentialComponent) SetObjectParam(slot, param int, value any) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetNSCParameter(n, slot, param, value)
	return err
}

// ObjectProperty reads one property of an object, optionally of one face.
func (s *NonSequentialComponent) ObjectProperty(slot, code, face int) (string, error) {
	n, err := s.Num()
	if err != nil {
		return "", err
	}
	return s.conn.GetNSCProperty(n, slot, code, face)
}

// SetObjectProperty writes one property of an object, optionally of one
// face.
func (s *NonSequentialComponent) SetObjectProperty(slot, code, face int, value any) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetNSCProperty(n, slot, code, face, value)
	return err
}

// SetObjectComment sets the object's comment string.
func (s *NonSequentialComponent) SetObjectComment(slot int, comment string) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetNSCObjectData(n, slot, 1, comment)
	return err
}

// SetObjectMaterial sets the object's material.
func (s *NonSequentialComponent) SetObjectMaterial(slot int, material string) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetNSCPosition(n, slot, 7, strings.ToUpper(material))
	return err
}

// SetObjectRef sets the object the slot's placement is relative to.
func (s *NonSequentialComponent) SetObjectRef(slot, ref int) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	_, err = s.conn.SetNSCObjectData(n, slot, 5, ref)
	return err
}

// ObjectPlacement selects placement coordinates to update. Nil fields are
// left as they are.
type ObjectPlacement struct {
	OffsetX, OffsetY, OffsetZ *float64
	RotateX, RotateY, RotateZ *float64
}

// PlaceObject updates the placement coordinates set in pos.
func (s *NonSequentialComponent) PlaceObject(slot int, pos ObjectPlacement) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	coords := []*float64{pos.OffsetX, pos.OffsetY, pos.OffsetZ, pos.RotateX, pos.RotateY, pos.RotateZ}
	for i, v := range coords {
		if v == nil {
			continue
		}
		if _, err := s.conn.SetNSCPosition(n, slot, i+1, *v); err != nil {
			return err
		}
	}
	return nil
}

// SetObjectApertureFile attaches a user aperture file to the object and
// enables it.
func (s *NonSequentialComponent) SetObjectApertureFile(slot int, path string) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	if _, err := s.conn.SetNSCObjectData(n, slot, 4, path); err != nil {
		return err
	}
	_, err = s.conn.SetNSCObjectData(n, slot, 3, 1)
	return err
}

// SetObjectIgnored excludes the object from ray tracing. With onLaunchOnly
// the object still intersects rays but launches none.
func (s *NonSequentialComponent) SetObjectIgnored(slot int, ignore, onLaunchOnly bool) (int, error) {
	n, err := s.Num()
	if err != nil {
		return 0, err
	}
	status := 0
	if ignore {
		status = 1
		if onLaunchOnly {
			status = 2
		}
	}
	raw, err := s.conn.SetNSCProperty(n, slot, 16, 0, status)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("object %d ignore: parse %q: %w", slot, raw, err)
	}
	return int(v), nil
}

// InsertObject inserts a new object of the given type in slot, shifting
// later slots up.
func (s *NonSequentialComponent) InsertObject(slot int, objType string) error {
	n, err := s.Num()
	if err != nil {
		return err
	}
	if err := s.conn.InsertObject(n, slot); err != nil {
		return err
	}
	_, err = s.conn.SetNSCObjectData(n, slot, 0, objType)
	return err
}

// InsertStandardSurface inserts a standard-surface object. Zero-valued
// options are left at the host defaults.
func (s *NonSequentialComponent) InsertStandardSurface(slot int, comment string, radius, conic, maxAperture float64) error {
	if err := s.InsertObject(slot, "NSC_SSUR"); err != nil {
		return err
	}
	if comment != "" {
		if err := s.SetObjectComment(slot, comment); err != nil {
			return err
		}
	}
	if radius != 0 {
		if err := s.SetObjectParam(slot, 1, radius); err != nil {
			return err
		}
	}
	if conic != 0 {
		if err := s.SetObjectParam(slot, 2, conic); err != nil {
			return err
		}
	}
	if maxAperture != 0 {
		if err := s.SetObjectParam(slot, 3, maxAperture); err != nil {
			return err
		}
	}
	return nil
}

// InsertToroidalSurface inserts a toroidal-surface object.
func (s *NonSequentialComponent) InsertToroidalSurface(slot int, comment string, radius, radiusOfRotation, halfWidthX, halfWidthY float64) error {
	if err := s.InsertObject(slot, "NSC_TSUR"); err != nil {
		return err
	}
	if comment != "" {
		if err := s.SetObjectComment(slot, comment); err != nil {
			return err
		}
	}
	if radius != 0 {
		if err := s.SetObjectParam(slot, 6, radius); err != nil {
			return err
		}
	}
	if radiusOfRotation != 0 {
		if err := s.SetObjectParam(slot, 5, radiusOfRotation); err != nil {
			return err
		}
	}
	if halfWidthX != 0 {
		if err := s.SetObjectParam(slot, 1, halfWidthX); err != nil {
			return err
		}
	}
	if halfWidthY != 0 {
		if err := s.SetObjectParam(slot, 2, halfWidthY); err != nil {
			return err
		}
	}
	return nil
}

// InsertImported inserts an imported CAD object. The scale parameter is set
// to 1 so the import keeps its native units.
func (s *NonSequentialComponent) InsertImported(slot int, path string) error {
	if err := s.InsertObject(slot, "NSC_IMPT"); err != nil {
		return err
	}
	if err := s.SetObjectComment(slot, path); err != nil {
		return err
	}
	return s.SetObjectParam(slot, 1, 1.0)
}

// InsertDetectorRect inserts a rectangular detector. Zero pixel counts keep
// the host defaults.
func (s *NonSequentialComponent) InsertDetectorRect(slot int, comment string, pixelsX, pixelsY int) error {
	if err := s.InsertObject(slot, "NSC_DETE"); err != nil {
		return err
	}
	if comment != "" {
		if err := s.SetObjectComment(slot, comment); err != nil {
			return err
		}
	}
	if pixelsX != 0 {
		if err := s.SetObjectParam(slot, 3, pixelsX); err != nil {
			return err
		}
	}
	if pixelsY != 0 {
		if err := s.SetObjectParam(slot, 4, pixelsY); err != nil {
			return err
		}
	}
	return nil
}

// InsertSourceRect inserts a rectangular source object.
func (s *NonSequentialComponent) InsertSourceRect(slot int) error {
	return s.InsertObject(slot, "NSC_SRCR")
}

// InsertTwoAngleSource inserts a source with independent x and y angular
// half-widths. srcIsRect and angDistrIsRect choose rectangular over
// elliptical shapes for the source and its angular distribution.
func (s *NonSequentialComponent) InsertTwoAngleSource(slot int, halfWidths, halfAngles [2]float64, srcIsRect, angDistrIsRect bool) error {
	if err := s.InsertObject(slot, "NSC_SR2A"); err != nil {
		return err
	}
	if err := s.SetObjectParam(slot, 6, halfWidths[0]); err != nil {
		return err
	}
	if err := s.SetObjectParam(slot, 7, halfWidths[1]); err != nil {
		return err
	}
	if err := s.SetObjectParam(slot, 8, halfAngles[0]); err != nil {
		return err
	}
	if err := s.SetObjectParam(slot, 9, halfAngles[1]); err != nil {
		return err
	}
	if err := s.SetObjectParam(slot, 10, !srcIsRect); err != nil {
		return err
	}
	return s.SetObjectParam(slot, 11, !angDistrIsRect)
}

// InsertStandardLens inserts a standard-lens object.
func (s *NonSequentialComponent) InsertStandardLens(slot int) error {
	return s.InsertObject(slot, "NSC_SLEN")
}

// InsertLensletArray inserts a diffractive lenslet array. Zero-valued
// options keep the host defaults.
func (s *NonSequentialComponent) InsertLensletArray(slot int, comment string, thickness, grooveFreq, order float64, diffractFace int) error {
	if err := s.InsertObject(slot, "NSC_LET1"); err != nil {
		return err
	}
	if comment != "" {
		if err := s.SetObjectComment(slot, comment); err != nil {
			return err
		}
	}
	if thickness != 0 {
		if err := s.SetObjectParam(slot, 3, thickness); err != nil {
			return err
		}
	}
	if grooveFreq != 0 {
		if err := s.SetObjectParam(slot, 10, grooveFreq); err != nil {
			return err
		}
	}
	if order != 0 {
		if err := s.SetObjectParam(slot, 11, order); err != nil {
			return err
		}
	}
	if diffractFace != 0 {
		if err := s.SetObjectParam(slot, 24, diffractFace); err != nil {
			return err
		}
	}
	return nil
}

// InsertRectVolume inserts a rectangular volume object.
func (s *NonSequentialComponent) InsertRectVolume(slot int, comment string) error {
	if err := s.InsertObject(slot, "NSC_RBLK"); err != nil {
		return err
	}
	if comment == "" {
		return nil
	}
	return s.SetObjectComment(slot, comment)
}
