package lens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
)

func newGroup(t *testing.T) *lens.NonSequentialComponent {
	t.Helper()
	_, _, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("NONSEQCO"), nil)
	require.NoError(t, err)
	return surf.(*lens.NonSequentialComponent)
}

func TestInsertObjectsShiftSlots(t *testing.T) {
	group := newGroup(t)

	n, err := group.ObjectCount()
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, group.InsertSourceRect(1))
	require.NoError(t, group.InsertStandardLens(1))
	n, err = group.ObjectCount()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// the lens went in at slot 1, pushing the source to slot 2
	typ, err := group.ObjectType(1)
	require.NoError(t, err)
	require.Equal(t, "NSC_SLEN", typ)
	typ, err = group.ObjectType(2)
	require.NoError(t, err)
	require.Equal(t, "NSC_SRCR", typ)
}

func TestInsertStandardSurfaceSetsParams(t *testing.T) {
	group := newGroup(t)
	require.NoError(t, group.InsertStandardSurface(1, "mirror", -50, -1, 12))

	radius, err := group.ObjectParam(1, 1)
	require.NoError(t, err)
	require.Equal(t, -50.0, radius)
	conic, err := group.ObjectParam(1, 2)
	require.NoError(t, err)
	require.Equal(t, -1.0, conic)
	aperture, err := group.ObjectParam(1, 3)
	require.NoError(t, err)
	require.Equal(t, 12.0, aperture)
}

func TestTwoAngleSourceShapeFlags(t *testing.T) {
	group := newGroup(t)
	require.NoError(t, group.InsertTwoAngleSource(1, [2]float64{1, 2}, [2]float64{5, 10}, true, false))

	// shape params carry 0 for rectangular, 1 for elliptical
	src, err := group.ObjectParam(1, 10)
	require.NoError(t, err)
	require.Equal(t, 0.0, src)
	dist, err := group.ObjectParam(1, 11)
	require.NoError(t, err)
	require.Equal(t, 1.0, dist)

	hy, err := group.ObjectParam(1, 7)
	require.NoError(t, err)
	require.Equal(t, 2.0, hy)
}

func TestSetObjectMaterialUppercases(t *testing.T) {
	_, host, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("NONSEQCO"), nil)
	require.NoError(t, err)
	group := surf.(*lens.NonSequentialComponent)

	require.NoError(t, group.InsertRectVolume(1, "block"))
	host.ClearCommands()
	require.NoError(t, group.SetObjectMaterial(1, "bk7"))

	cmds := host.Commands()
	require.Len(t, cmds, 2)
	require.Equal(t, "SetNSCPosition,1,1,7,BK7", cmds[1])
}

func TestPlaceObjectSkipsNilCoordinates(t *testing.T) {
	group := newGroup(t)
	require.NoError(t, group.InsertSourceRect(1))

	z := 25.0
	ry := 15.0
	require.NoError(t, group.PlaceObject(1, lens.ObjectPlacement{OffsetZ: &z, RotateY: &ry}))
}

func TestSetObjectIgnoredStatus(t *testing.T) {
	group := newGroup(t)
	require.NoError(t, group.InsertSourceRect(1))

	status, err := group.SetObjectIgnored(1, true, false)
	require.NoError(t, err)
	require.Equal(t, 1, status)
	status, err = group.SetObjectIgnored(1, true, true)
	require.NoError(t, err)
	require.Equal(t, 2, status)
	status, err = group.SetObjectIgnored(1, false, false)
	require.NoError(t, err)
	require.Zero(t, status)
}
