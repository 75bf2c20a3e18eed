package lens

import (
	"errors"
	"fmt"
)

var (
	// ErrObjectSurface is returned for structural edits that would touch the
	// fixed object sentinel: deleting position 0 or inserting before it.
	// It is raised locally, before any host call.
	ErrObjectSurface = errors.New("object surface position cannot be edited")

	// ErrNotOptimizable is returned by Vary on fields that are not declared
	// as optimisation variables.
	ErrNotOptimizable = errors.New("field cannot be made an optimisation variable")

	// ErrNotFixable is returned by Fix on fields with no fixed solve type.
	ErrNotFixable = errors.New("field has no fixed solve")

	// ErrPickupNotSupported is returned when assigning a pickup expression to
	// a field with no pickup policy.
	ErrPickupNotSupported = errors.New("field does not support pickup solves")

	// ErrScaleNotSupported is returned when a pickup expression carries a
	// non-identity scale and the target field's policy cannot scale.
	ErrScaleNotSupported = errors.New("pickup on this field cannot scale the source value")

	// ErrOffsetNotSupported is returned when a pickup expression carries a
	// nonzero offset and the target field's policy cannot offset.
	ErrOffsetNotSupported = errors.New("pickup on this field cannot offset the source value")

	// ErrCrossColumnPickup is returned when the source and target fields live
	// in different columns and the target's policy cannot dereference other
	// columns.
	ErrCrossColumnPickup = errors.New("pickup on this field cannot reference another column")

	// ErrReadOnlySetting is returned by setters for system settings the host
	// reports but does not accept.
	ErrReadOnlySetting = errors.New("system setting is read-only")

	// ErrNoUndoSteps is returned by ReturnToCoordinateFrame when null
	// transforms are excluded and the whole range turns out to be null.
	ErrNoUndoSteps = errors.New("no transforms to undo in range")
)

// UnknownFieldError reports a creation-time field name no parameter matches.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("surface has no field %q", e.Name)
}

// CommentTooLongError reports a comment+tag encoding that exceeds the
// persistable length. The value is never transmitted: a longer string would
// survive in memory but desynchronise from what a saved file reloads.
type CommentTooLongError struct {
	Encoded string
}

func (e *CommentTooLongError) Error() string {
	return fmt.Sprintf("encoded comment %q is %d chars, limit %d", e.Encoded, len(e.Encoded), MaxCommentLen)
}
