package lens

import "fmt"

// PickupExpression is a deferred reference to another field's value, with an
// affine modifier: scale*source + offset. Expressions are immutable; the
// arithmetic methods return adjusted copies, so a Linked() result can be
// reused in several assignments.
type PickupExpression struct {
	src    *Param
	scale  float64
	offset float64
}

func (e *PickupExpression) clone() *PickupExpression {
	c := *e
	return &c
}

// Plus adds a constant to the referenced value.
func (e *PickupExpression) Plus(k float64) *PickupExpression {
	c := e.clone()
	c.offset += k
	return c
}

// Minus subtracts a constant from the referenced value.
func (e *PickupExpression) Minus(k float64) *PickupExpression {
	return e.Plus(-k)
}

// Times multiplies the whole expression by a constant.
func (e *PickupExpression) Times(k float64) *PickupExpression {
	c := e.clone()
	c.scale *= k
	c.offset *= k
	return c
}

// Div divides the whole expression by a constant.
func (e *PickupExpression) Div(k float64) *PickupExpression {
	c := e.clone()
	c.scale /= k
	c.offset /= k
	return c
}

// Neg negates the whole expression.
func (e *PickupExpression) Neg() *PickupExpression {
	return e.Times(-1)
}

// PickupFormat is a field's pickup policy: the solve type code that installs
// a pickup on it, and which modifiers that solve accepts. The policies differ
// per column and are narrower than what the host's own editor allows.
type PickupFormat struct {
	Solve  int  // solve type code for a pickup on this field
	Scale  bool // the referenced value may be scaled
	Offset bool // the referenced value may be offset
	ColRef bool // the pickup may reference a different column
}

// install validates expr against the policy and sends the solve. The wire
// order is solve type, source surface, then the accepted modifiers, with
// scale and offset swapped for parameter-table fields, and finally the source
// column reference when the policy carries one.
func (f *PickupFormat) install(target *Param, expr *PickupExpression) error {
	var mods []any
	if f.Scale {
		mods = append(mods, expr.scale)
	} else if expr.scale != 1 {
		return fmt.Errorf("field %d: %w", target.column, ErrScaleNotSupported)
	}
	if f.Offset {
		mods = append(mods, expr.offset)
	} else if expr.offset != 0 {
		return fmt.Errorf("field %d: %w", target.column, ErrOffsetNotSupported)
	}
	if target.reverse && len(mods) == 2 {
		mods[0], mods[1] = mods[1], mods[0]
	}
	if f.ColRef {
		mods = append(mods, expr.src.solve+1)
	} else if expr.src.column != target.column || expr.src.table != target.table {
		return fmt.Errorf("field %d from field %d: %w", target.column, expr.src.column, ErrCrossColumnPickup)
	}
	tn, err := target.surf.Num()
	if err != nil {
		return err
	}
	sn, err := expr.src.surf.Num()
	if err != nil {
		return err
	}
	args := append([]any{f.Solve, sn}, mods...)
	_, err = target.surf.conn.SetSolve(tn, target.solve, args...)
	return err
}
