package lens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

func TestSystemConfigSettersPatchOneField(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	cfg := lens.NewSystemConfig(conn)

	require.NoError(t, cfg.SetTemperature(35))
	require.NoError(t, cfg.SetUnitCode(2))

	temp, err := cfg.Temperature()
	require.NoError(t, err)
	require.Equal(t, 35.0, temp)
	unit, err := cfg.UnitCode()
	require.NoError(t, err)
	require.Equal(t, 2, unit)

	// untouched settings keep their defaults
	pressure, err := cfg.Pressure()
	require.NoError(t, err)
	require.Equal(t, 1.0, pressure)
	stop, err := cfg.StopSurf()
	require.NoError(t, err)
	require.Equal(t, 1, stop)
}

func TestSystemConfigAdjustIndex(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	cfg := lens.NewSystemConfig(conn)

	on, err := cfg.AdjustIndex()
	require.NoError(t, err)
	require.False(t, on)

	require.NoError(t, cfg.SetAdjustIndex(true))
	on, err = cfg.AdjustIndex()
	require.NoError(t, err)
	require.True(t, on)
}

func TestNonAxialFollowsModelContents(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	cfg := lens.NewSystemConfig(conn)

	nonAxial, err := cfg.NonAxial()
	require.NoError(t, err)
	require.False(t, nonAxial)

	seq, err := lens.NewSequence(conn)
	require.NoError(t, err)
	_, err = seq.InsertNew(1, lens.Lookup("COORDBRK"), nil)
	require.NoError(t, err)

	nonAxial, err = cfg.NonAxial()
	require.NoError(t, err)
	require.True(t, nonAxial)
}

func TestUnitAndRayAimingNames(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "mm"}, {1, "cm"}, {2, "in"}, {3, "m"}, {9, ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, lens.UnitName(c.code))
	}
	require.Equal(t, "", lens.RayAimingName(0))
	require.Equal(t, "paraxial", lens.RayAimingName(1))
	require.Equal(t, "real", lens.RayAimingName(2))
}
