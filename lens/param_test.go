package lens_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

func newModel(t *testing.T) (*zmx.Conn, *zmxtest.Host, *lens.SurfaceSequence) {
	t.Helper()
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	seq, err := lens.NewSequence(conn)
	require.NoError(t, err)
	return conn, host, seq
}

// twoStandards inserts two standard surfaces between the object and image
// planes and returns their handles.
func twoStandards(t *testing.T, seq *lens.SurfaceSequence) (*lens.Standard, *lens.Standard) {
	t.Helper()
	s1, err := seq.InsertNew(1, lens.Lookup("STANDARD"), nil)
	require.NoError(t, err)
	s2, err := seq.InsertNew(2, lens.Lookup("STANDARD"), nil)
	require.NoError(t, err)
	return s1.(*lens.Standard), s2.(*lens.Standard)
}

func TestSetLiteralValue(t *testing.T) {
	_, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	require.NoError(t, s1.Curvature().Set(0.25))
	v, err := s1.Curvature().Float()
	require.NoError(t, err)
	require.Equal(t, 0.25, v)

	require.NoError(t, s1.Glass().Set("BK7"))
	g, err := s1.Glass().Text()
	require.NoError(t, err)
	require.Equal(t, "BK7", g)
}

func TestVaryThenFixVariables(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	require.NoError(t, s1.Thickness().Vary())
	require.NoError(t, s1.Curvature().Vary())

	n, err := s1.Num()
	require.NoError(t, err)
	raw, err := conn.GetSolve(n, 1)
	require.NoError(t, err)
	require.Equal(t, "1", raw)

	fixed, err := s1.FixVariables()
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, fixed)

	raw, err = conn.GetSolve(n, 1)
	require.NoError(t, err)
	require.Equal(t, "0", raw)
}

func TestSemiDiaIsNotAVariable(t *testing.T) {
	_, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)
	require.ErrorIs(t, s1.SemiDia().Vary(), lens.ErrNotOptimizable)
}

func TestThicknessPickupWithScaleAndOffset(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)

	require.NoError(t, s1.Thickness().Set(5.0))
	require.NoError(t, s2.Thickness().Set(s1.Thickness().Linked().Times(2).Plus(3)))
	require.NoError(t, conn.GetUpdate())

	v, err := s2.Thickness().Float()
	require.NoError(t, err)
	require.Equal(t, 13.0, v)

	// the pickup is live: changing the source changes the target
	require.NoError(t, s1.Thickness().Set(10.0))
	require.NoError(t, conn.GetUpdate())
	v, err = s2.Thickness().Float()
	require.NoError(t, err)
	require.Equal(t, 23.0, v)
}

func TestCurvaturePickupScales(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)

	require.NoError(t, s1.Curvature().Set(0.5))
	require.NoError(t, s2.Curvature().Set(s1.Curvature().Linked().Neg()))
	require.NoError(t, conn.GetUpdate())

	v, err := s2.Curvature().Float()
	require.NoError(t, err)
	require.Equal(t, -0.5, v)
}

func TestGlassPickupTakesNoModifiers(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)

	require.NoError(t, s1.Glass().Set("SF11"))
	require.ErrorIs(t, s2.Glass().LinkTo(s1.Glass().Linked().Times(2)), lens.ErrScaleNotSupported)
	require.ErrorIs(t, s2.Glass().LinkTo(s1.Glass().Linked().Plus(1)), lens.ErrOffsetNotSupported)

	require.NoError(t, s2.Glass().LinkTo(s1.Glass().Linked()))
	require.NoError(t, conn.GetUpdate())
	g, err := s2.Glass().Text()
	require.NoError(t, err)
	require.Equal(t, "SF11", g)
}

func TestCrossColumnPickupRejected(t *testing.T) {
	_, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)
	err := s2.Curvature().LinkTo(s1.Thickness().Linked())
	require.ErrorIs(t, err, lens.ErrCrossColumnPickup)
}

func TestAuxPickupCrossesColumns(t *testing.T) {
	conn, _, seq := newModel(t)
	cb1, err := seq.InsertNew(1, lens.Lookup("COORDBRK"), map[string]any{"offset_x": 3.0})
	require.NoError(t, err)
	cb2, err := seq.InsertNew(2, lens.Lookup("COORDBRK"), nil)
	require.NoError(t, err)
	b1 := cb1.(*lens.CoordinateBreak)
	b2 := cb2.(*lens.CoordinateBreak)

	require.NoError(t, b2.OffsetY().Set(b1.OffsetX().Linked().Times(2).Plus(1)))
	require.NoError(t, conn.GetUpdate())

	v, err := b2.OffsetY().Float()
	require.NoError(t, err)
	require.Equal(t, 7.0, v)
}

func TestLiteralOverwriteDropsPickup(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, s2 := twoStandards(t, seq)

	require.NoError(t, s1.Thickness().Set(4.0))
	require.NoError(t, s2.Thickness().Set(s1.Thickness().Linked()))
	require.NoError(t, conn.GetUpdate())

	// a literal assignment pins the field first, dropping the pickup
	require.NoError(t, s2.Thickness().Set(1.0))
	require.NoError(t, s1.Thickness().Set(9.0))
	require.NoError(t, conn.GetUpdate())

	v, err := s2.Thickness().Float()
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestSetFNumberInstallsSolve(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	require.NoError(t, s1.Curvature().SetFNumber(10))
	n, err := s1.Num()
	require.NoError(t, err)
	raw, err := conn.GetSolve(n, 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "11,"), "solve = %q", raw)
}

func TestFocusOnNextInstallsSolve(t *testing.T) {
	conn, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	require.NoError(t, s1.Thickness().FocusOnNext(0, 0.2))
	n, err := s1.Num()
	require.NoError(t, err)
	raw, err := conn.GetSolve(n, 1)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "2,"), "solve = %q", raw)
}

func TestMaximizeThenFixUpdatesFirst(t *testing.T) {
	_, host, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	require.NoError(t, s1.SemiDia().Maximize(true))
	var sawUpdate bool
	for _, cmd := range host.Commands() {
		if cmd == "GetUpdate" {
			sawUpdate = true
		}
	}
	require.True(t, sawUpdate, "Maximize(fix) must resolve the solve before pinning it")
}

func TestUnknownField(t *testing.T) {
	_, _, seq := newModel(t)
	s1, _ := twoStandards(t, seq)

	_, err := s1.Field("no_such_field")
	var unknown *lens.UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "no_such_field", unknown.Name)

	f, err := s1.Field("conic")
	require.NoError(t, err)
	require.NoError(t, f.Set(-1.0))
	v, err := s1.Conic().Float()
	require.NoError(t, err)
	require.Equal(t, -1.0, v)
}
