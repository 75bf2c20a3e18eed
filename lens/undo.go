package lens

import (
	"fmt"
	"strconv"
)

// UndoOptions adjusts how ReturnToCoordinateFrame builds the undo chain.
// The zero value inserts the chain directly after the undone range and
// emits legs for null transforms too.
type UndoOptions struct {
	// InsertAt places the chain after the given surface number instead of
	// after the undone range.
	InsertAt int

	// SkipNullTransforms drops legs whose transform is entirely zero. The
	// chain then tracks only live transforms, at the cost of an error when
	// the whole range is null.
	SkipNullTransforms bool

	// Factory overrides how undo surfaces are created. The default inserts
	// coordinate breaks at consecutive positions after InsertAt.
	Factory func() (*CoordinateBreak, error)
}

// ReturnToCoordinateFrame appends coordinate breaks that undo every
// transform in the surface range [first, last], restoring the coordinate
// frame in effect before the range. Each undo leg picks up its source
// transform with negated linked solves, so later edits to the range stay
// undone. It returns the surface number of the last inserted undo surface.
func ReturnToCoordinateFrame(seq *SurfaceSequence, first, last int, opts UndoOptions) (int, error) {
	if first >= last {
		return 0, fmt.Errorf("undo range %d..%d is empty", first, last)
	}
	factory := opts.Factory
	if factory == nil {
		at := opts.InsertAt
		if at == 0 {
			at = last
		}
		next := at + 1
		factory = func() (*CoordinateBreak, error) {
			surf, err := seq.InsertNew(next, Lookup("COORDBRK"), nil)
			if err != nil {
				return nil, err
			}
			next++
			cb, ok := surf.(*CoordinateBreak)
			if !ok {
				return nil, fmt.Errorf("inserted surface is %T, want coordinate break", surf)
			}
			return cb, nil
		}
	}

	var inserted *CoordinateBreak
	for sn := last; sn >= first; sn-- {
		toUndo, err := seq.At(sn)
		if err != nil {
			return 0, err
		}
		thickness, err := toUndo.Thickness().Float()
		if err != nil {
			return 0, err
		}
		cb, isBreak := toUndo.(*CoordinateBreak)
		if isBreak {
			if thickness != 0 || !opts.SkipNullTransforms {
				leg, err := factory()
				if err != nil {
					return 0, err
				}
				if err := leg.Thickness().Set(cb.Thickness().Linked().Neg()); err != nil {
					return 0, err
				}
				if err := setUndoComment(leg, cb, "UNDO thickness "); err != nil {
					return 0, err
				}
				inserted = leg
			}
			live, err := anyTransform(cb)
			if err != nil {
				return 0, err
			}
			if live || !opts.SkipNullTransforms {
				leg, err := factory()
				if err != nil {
					return 0, err
				}
				if err := leg.OffsetX().Set(cb.OffsetX().Linked().Neg()); err != nil {
					return 0, err
				}
				if err := leg.OffsetY().Set(cb.OffsetY().Linked().Neg()); err != nil {
					return 0, err
				}
				if err := leg.RotateX().Set(cb.RotateX().Linked().Neg()); err != nil {
					return 0, err
				}
				if err := leg.RotateY().Set(cb.RotateY().Linked().Neg()); err != nil {
					return 0, err
				}
				if err := leg.RotateZ().Set(cb.RotateZ().Linked().Neg()); err != nil {
					return 0, err
				}
				order, err := cb.RotateBeforeOffset().Bool()
				if err != nil {
					return 0, err
				}
				if err := leg.RotateBeforeOffset().Set(!order); err != nil {
					return 0, err
				}
				if err := setUndoComment(leg, cb, "UNDO "); err != nil {
					return 0, err
				}
				inserted = leg
			}
		} else if thickness != 0 || !opts.SkipNullTransforms {
			leg, err := factory()
			if err != nil {
				return 0, err
			}
			if err := leg.RotateBeforeOffset().Set(false); err != nil {
				return 0, err
			}
			if err := leg.Thickness().Set(toUndo.Thickness().Linked().Neg()); err != nil {
				return 0, err
			}
			if err := setUndoComment(leg, toUndo, "UNDO "); err != nil {
				return 0, err
			}
			inserted = leg
		}
	}
	if inserted == nil {
		return 0, fmt.Errorf("undo range %d..%d: %w", first, last, ErrNoUndoSteps)
	}
	return inserted.Num()
}

// anyTransform reports whether any of the break's five transform components
// is nonzero.
func anyTransform(cb *CoordinateBreak) (bool, error) {
	for _, p := range []*AuxParam{cb.OffsetX(), cb.OffsetY(), cb.RotateX(), cb.RotateY(), cb.RotateZ()} {
		v, err := p.Float()
		if err != nil {
			return false, err
		}
		if v != 0 {
			return true, nil
		}
	}
	return false, nil
}

// setUndoComment labels an undo leg after the surface it undoes, falling
// back to the source's position when it has no comment.
func setUndoComment(leg *CoordinateBreak, src Surface, prefix string) error {
	comment, err := src.Comment().Get()
	if err != nil {
		return err
	}
	if comment == "" {
		n, err := src.Num()
		if err != nil {
			return err
		}
		comment = strconv.Itoa(n)
	}
	return leg.Comment().Set(prefix + comment)
}
