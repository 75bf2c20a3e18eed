package lens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
)

func TestRegistryReturnsConcreteHandles(t *testing.T) {
	_, _, seq := newModel(t)
	cases := []struct {
		typeCode string
		want     lens.Surface
	}{
		{"STANDARD", &lens.Standard{}},
		{"COORDBRK", &lens.CoordinateBreak{}},
		{"TOROIDAL", &lens.Toroidal{}},
		{"DGRATING", &lens.Grating{}},
		{"GEN_FRES", &lens.GeneralisedFresnel{}},
		{"RETROREF", &lens.RetroReflect{}},
		{"NONSEQCO", &lens.NonSequentialComponent{}},
	}
	for _, c := range cases {
		surf, err := seq.InsertNew(1, lens.Lookup(c.typeCode), nil)
		require.NoError(t, err, c.typeCode)
		require.IsType(t, c.want, surf, c.typeCode)
		require.Equal(t, c.typeCode, surf.TypeCode())
		require.NoError(t, surf.Remove())
	}

	// unknown codes fall back to a generic handle
	surf, err := seq.At(1)
	require.NoError(t, err)
	require.NoError(t, surf.Type().Set("WEIRDSRF"))
	again, err := seq.At(1)
	require.NoError(t, err)
	require.IsType(t, &lens.Generic{}, again)
}

func TestToroidalExtraColumns(t *testing.T) {
	conn, _, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("TOROIDAL"), map[string]any{
		"radius_of_rotation": 200.0,
		"num_poly_terms":     3,
		"norm_radius":        50.0,
	})
	require.NoError(t, err)
	tor := surf.(*lens.Toroidal)

	r, err := tor.RadiusOfRotation().Float()
	require.NoError(t, err)
	require.Equal(t, 200.0, r)
	terms, err := tor.NumPolyTerms().Int()
	require.NoError(t, err)
	require.Equal(t, 3, terms)

	// extra columns support scaling pickups
	other, err := seq.InsertNew(2, lens.Lookup("TOROIDAL"), nil)
	require.NoError(t, err)
	require.NoError(t, other.(*lens.Toroidal).NormRadius().Set(tor.NormRadius().Linked().Times(0.5)))
	require.NoError(t, conn.GetUpdate())
	v, err := other.(*lens.Toroidal).NormRadius().Float()
	require.NoError(t, err)
	require.Equal(t, 25.0, v)
}

func TestGratingFields(t *testing.T) {
	_, _, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("DGRATING"), map[string]any{
		"groove_freq": 0.6,
		"order":       -1.0,
	})
	require.NoError(t, err)
	g := surf.(*lens.Grating)

	freq, err := g.GrooveFreq().Float()
	require.NoError(t, err)
	require.Equal(t, 0.6, freq)
	order, err := g.Order().Float()
	require.NoError(t, err)
	require.Equal(t, -1.0, order)
}

func TestRetroReflectHasNoCurvature(t *testing.T) {
	_, _, seq := newModel(t)
	surf, err := seq.InsertNew(1, lens.Lookup("RETROREF"), map[string]any{"glass": "MIRROR"})
	require.NoError(t, err)

	_, err = surf.Field("curvature")
	var unknown *lens.UnknownFieldError
	require.ErrorAs(t, err, &unknown)

	g, err := surf.(*lens.RetroReflect).Glass().Text()
	require.NoError(t, err)
	require.Equal(t, "MIRROR", g)
}
