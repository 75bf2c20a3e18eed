package lens_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

// buildTiltedModel sets up object, a standard surface with a real thickness
// and a tilted, decentered coordinate break.
func buildTiltedModel(t *testing.T) (*zmx.Conn, *zmxtest.Host, *lens.SurfaceSequence) {
	t.Helper()
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	seq, err := lens.NewEmptySequence(conn)
	require.NoError(t, err)

	obj, err := seq.At(0)
	require.NoError(t, err)
	require.NoError(t, obj.Thickness().Set(0.0))

	_, err = seq.InsertNew(1, lens.Lookup("STANDARD"), map[string]any{"thickness": 10.0})
	require.NoError(t, err)
	_, err = seq.InsertNew(2, lens.Lookup("COORDBRK"), map[string]any{
		"thickness": 5.0,
		"offset_x":  3.0,
		"rotate_y":  20.0,
	})
	require.NoError(t, err)
	return conn, host, seq
}

func TestReturnToCoordinateFrameRestoresFrame(t *testing.T) {
	conn, host, seq := buildTiltedModel(t)

	last, err := lens.ReturnToCoordinateFrame(seq, 1, 2, lens.UndoOptions{})
	require.NoError(t, err)
	require.Equal(t, 5, last)
	require.Equal(t, 7, host.SurfaceCount())

	require.NoError(t, conn.GetUpdate())

	r, offset, err := conn.GetGlobalMatrix(last + 1)
	require.NoError(t, err)
	ident := zmx.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := range 3 {
		for j := range 3 {
			require.InDelta(t, ident[i][j], r[i][j], 1e-9, "rotation [%d][%d]", i, j)
		}
		require.InDelta(t, 0, offset[i], 1e-9, "offset [%d]", i)
	}
}

func TestUndoLegsTrackSourceEdits(t *testing.T) {
	conn, _, seq := buildTiltedModel(t)

	last, err := lens.ReturnToCoordinateFrame(seq, 1, 2, lens.UndoOptions{})
	require.NoError(t, err)

	// rotate the break further; the pickups keep the chain cancelling
	cb, err := seq.At(2)
	require.NoError(t, err)
	rotY, err := cb.Field("rotate_y")
	require.NoError(t, err)
	require.NoError(t, rotY.Set(-35.0))
	require.NoError(t, conn.GetUpdate())

	r, _, err := conn.GetGlobalMatrix(last + 1)
	require.NoError(t, err)
	ident := zmx.Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := range 3 {
		for j := range 3 {
			require.InDelta(t, ident[i][j], r[i][j], 1e-9, "rotation [%d][%d]", i, j)
		}
	}
}

func TestUndoCommentsNameTheSource(t *testing.T) {
	conn, _, seq := buildTiltedModel(t)

	cb, err := seq.At(2)
	require.NoError(t, err)
	require.NoError(t, cb.Comment().Set("fold"))

	_, err = lens.ReturnToCoordinateFrame(seq, 1, 2, lens.UndoOptions{})
	require.NoError(t, err)
	require.NoError(t, conn.GetUpdate())

	thickLeg, err := seq.At(3)
	require.NoError(t, err)
	comment, err := thickLeg.Comment().Get()
	require.NoError(t, err)
	require.Equal(t, "UNDO thickness fold", comment)

	transformLeg, err := seq.At(4)
	require.NoError(t, err)
	comment, err = transformLeg.Comment().Get()
	require.NoError(t, err)
	require.Equal(t, "UNDO fold", comment)
}

func TestSkipNullTransformsEmptyRange(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	seq, err := lens.NewEmptySequence(conn)
	require.NoError(t, err)
	_, err = seq.InsertNew(1, lens.Lookup("STANDARD"), nil)
	require.NoError(t, err)
	_, err = seq.InsertNew(2, lens.Lookup("STANDARD"), nil)
	require.NoError(t, err)

	_, err = lens.ReturnToCoordinateFrame(seq, 1, 2, lens.UndoOptions{SkipNullTransforms: true})
	require.ErrorIs(t, err, lens.ErrNoUndoSteps)
}

func TestUndoRangeMustSpanSurfaces(t *testing.T) {
	_, _, seq := buildTiltedModel(t)
	_, err := lens.ReturnToCoordinateFrame(seq, 2, 2, lens.UndoOptions{})
	require.Error(t, err)
}

func TestCoordinateReturnCodes(t *testing.T) {
	conn, _, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("COORDBRK"), nil)
	require.NoError(t, err)
	cb := surf.(*lens.CoordinateBreak)
	target, err := seq.At(0)
	require.NoError(t, err)

	returnCode := func() float64 {
		n, err := cb.Num()
		require.NoError(t, err)
		raw, err := conn.GetSurfaceData(n, 80)
		require.NoError(t, err)
		v, err := strconv.ParseFloat(raw, 64)
		require.NoError(t, err)
		return v
	}

	cases := []struct {
		offsetXY, offsetZ bool
		want              float64
	}{
		{false, false, 1},
		{true, false, 2},
		{true, true, 3},
	}
	for _, c := range cases {
		require.NoError(t, cb.ReturnTo(target, c.offsetXY, c.offsetZ))
		require.Equal(t, c.want, returnCode())
	}

	require.Error(t, cb.ReturnTo(target, false, true))

	require.NoError(t, cb.ClearReturn())
	require.Equal(t, 0.0, returnCode())
}
