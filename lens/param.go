package lens

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the native value type of a surface field. The host speaks text for
// everything; Kind decides how the raw string is interpreted. Numeric fields
// come back in exponent form even when they hold integers or flags, so Int
// and Bool parse through float.
type Kind int

const (
	Float Kind = iota
	Int
	Bool
	Text
)

// paramTable selects the host command family a field lives in.
type paramTable int

const (
	surfaceTable paramTable = iota // Get/SetSurfaceData columns
	paramsTable                    // Get/SetSurfaceParameter, the "parameter" columns
	extraTable                     // Get/SetExtra, the extra data editor
)

// Field is anything on a surface that can be assigned a value. Assigning a
// *PickupExpression installs a pickup solve instead of writing a literal.
type Field interface {
	Set(v any) error
}

// Param is one field of one surface. It holds no value; every read and write
// resolves the surface's label to a current position and goes to the host.
type Param struct {
	surf    *Base
	table   paramTable
	column  int
	kind    Kind
	solve   int // Set/GetSolve category code, -1 when the field has no solve slot
	pickup  *PickupFormat
	fix     int // solve type meaning "fixed" for this field, -1 when not fixable
	canVary bool
	reverse bool // parameter-table pickups take offset before scale on the wire
}

func newParam(b *Base, column int, kind Kind, solve int, pickup *PickupFormat, fix int, canVary bool) *Param {
	return &Param{surf: b, table: surfaceTable, column: column, kind: kind, solve: solve, pickup: pickup, fix: fix, canVary: canVary}
}

// plainParam is a field with no solve slot at all, like the type string.
func plainParam(b *Base, column int, kind Kind) *Param {
	return newParam(b, column, kind, -1, nil, -1, false)
}

func (p *Param) raw() (string, error) {
	n, err := p.surf.Num()
	if err != nil {
		return "", err
	}
	switch p.table {
	case paramsTable:
		return p.surf.conn.GetSurfaceParameter(n, p.column)
	case extraTable:
		return p.surf.conn.GetExtra(n, p.column)
	default:
		return p.surf.conn.GetSurfaceData(n, p.column)
	}
}

func (p *Param) write(v any) error {
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	switch p.table {
	case paramsTable:
		_, err = p.surf.conn.SetSurfaceParameter(n, p.column, v)
	case extraTable:
		_, err = p.surf.conn.SetExtra(n, p.column, v)
	default:
		_, err = p.surf.conn.SetSurfaceData(n, p.column, v)
	}
	return err
}

// Float reads the field as a float64.
func (p *Param) Float() (float64, error) {
	s, err := p.raw()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("field %d: parse %q: %w", p.column, s, err)
	}
	return v, nil
}

// Int reads the field as an integer. The host renders integer fields in
// exponent form, so this parses through Float.
func (p *Param) Int() (int, error) {
	v, err := p.Float()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Bool reads the field as a flag: any nonzero value is true.
func (p *Param) Bool() (bool, error) {
	v, err := p.Float()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Text reads the field verbatim.
func (p *Param) Text() (string, error) {
	return p.raw()
}

// Set writes a literal value, or installs a pickup solve when v is a
// *PickupExpression. Literal writes first pin the field with a fixed solve
// when the field supports one, so a stale solve cannot silently override the
// assignment.
func (p *Param) Set(v any) error {
	if expr, ok := v.(*PickupExpression); ok {
		return p.LinkTo(expr)
	}
	if p.fix >= 0 {
		if err := p.Fix(); err != nil {
			return err
		}
	}
	if b, ok := v.(bool); ok {
		if b {
			v = 1
		} else {
			v = 0
		}
	}
	return p.write(v)
}

// Vary marks the field as an optimisation variable.
func (p *Param) Vary() error {
	if !p.canVary {
		return fmt.Errorf("field %d: %w", p.column, ErrNotOptimizable)
	}
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSolve(n, p.solve, 1)
	return err
}

// Fix pins the field with a fixed solve, removing any variable or pickup.
func (p *Param) Fix() error {
	if p.fix < 0 {
		return fmt.Errorf("field %d: %w", p.column, ErrNotFixable)
	}
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSolve(n, p.solve, p.fix)
	return err
}

// Linked returns a pickup expression referencing this field's live value,
// ready to be modified arithmetically and assigned to another field.
func (p *Param) Linked() *PickupExpression {
	return &PickupExpression{src: p, scale: 1}
}

// LinkTo installs a pickup solve tracking expr.
func (p *Param) LinkTo(expr *PickupExpression) error {
	if p.pickup == nil {
		return fmt.Errorf("field %d: %w", p.column, ErrPickupNotSupported)
	}
	return p.pickup.install(p, expr)
}

// newAuxParam builds a parameter-table field. Its solve category is the
// column shifted by 4, pickups may scale, offset and reference other
// columns, and scale/offset travel reversed on the wire.
func newAuxParam(b *Base, column int, kind Kind) *AuxParam {
	p := &AuxParam{Param{
		surf: b, table: paramsTable, column: column, kind: kind,
		solve: column + 4, pickup: &PickupFormat{Solve: 2, Scale: true, Offset: true, ColRef: true},
		fix: 0, canVary: true, reverse: true,
	}}
	return p
}

// AuxParam is a parameter-table field. Its meaning depends entirely on the
// surface type that owns it.
type AuxParam struct {
	Param
}

// AlignToChiefRay installs a chief-ray solve on the field. wavelengthID 0
// means the primary wavelength.
func (p *AuxParam) AlignToChiefRay(fieldID, wavelengthID int) error {
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSolve(n, p.solve, 3, fieldID, wavelengthID)
	return err
}

// newExtraParam builds an extra-data-editor field. Its solve category is the
// column shifted by 1000 and pickups may only scale.
func newExtraParam(b *Base, column int, kind Kind) *Param {
	return &Param{
		surf: b, table: extraTable, column: column, kind: kind,
		solve: column + 1000, pickup: &PickupFormat{Solve: 2, Scale: true},
		fix: 0, canVary: true,
	}
}

// CurvatureParam is the curvature column of a refracting surface.
type CurvatureParam struct {
	Param
}

func newCurvatureParam(b *Base) *CurvatureParam {
	return &CurvatureParam{*newParam(b, 2, Float, 0, &PickupFormat{Solve: 4, Scale: true}, 0, true)}
}

// SetFNumber constrains the surface's f/# with a solve.
func (p *CurvatureParam) SetFNumber(fnumber float64) error {
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSolve(n, p.solve, 11, fnumber)
	return err
}

// ThicknessParam is the thickness column: the axial gap to the next surface.
type ThicknessParam struct {
	Param
}

func newThicknessParam(b *Base) *ThicknessParam {
	return &ThicknessParam{*newParam(b, 3, Float, 1, &PickupFormat{Solve: 5, Scale: true, Offset: true}, 0, true)}
}

// FocusOnNext constrains the thickness so the next surface lies where the
// marginal ray reaches targetHeight. With targetHeight zero and a small
// pupilZone this places the next surface at focus; pupilZone 0 requests the
// paraxial solution.
func (p *ThicknessParam) FocusOnNext(targetHeight, pupilZone float64) error {
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	_, err = p.surf.conn.SetSolve(n, p.solve, 2, targetHeight, pupilZone)
	return err
}

// SemiDiamParam is the semi-diameter column. It is automatic by default, so
// its fixed solve type is 1 rather than 0 and it is not an optimisation
// variable.
type SemiDiamParam struct {
	Param
}

func newSemiDiamParam(b *Base) *SemiDiamParam {
	return &SemiDiamParam{*newParam(b, 5, Float, 3, &PickupFormat{Solve: 2, Scale: true}, 1, false)}
}

// Maximize sets the semi-diameter to the maximum over all configurations.
// When fix is true the solved value is then pinned, which needs a model
// update to resolve first.
func (p *SemiDiamParam) Maximize(fix bool) error {
	n, err := p.surf.Num()
	if err != nil {
		return err
	}
	if _, err := p.surf.conn.SetSolve(n, p.solve, 3); err != nil {
		return err
	}
	if !fix {
		return nil
	}
	if err := p.surf.conn.GetUpdate(); err != nil {
		return err
	}
	return p.Fix()
}
