package lens_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optikforge/zmxlink/lens"
	"github.com/optikforge/zmxlink/zmx"
	"github.com/optikforge/zmxlink/zmxtest"
)

func TestModelConfigsClear(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	configs := lens.NewModelConfigs(conn)

	for range 3 {
		_, err := conn.InsertConfig(1)
		require.NoError(t, err)
		_, err = conn.InsertMCO(1)
		require.NoError(t, err)
	}
	n, err := configs.Count()
	require.NoError(t, err)
	require.Equal(t, 4, n)
	rows, err := configs.OperandCount()
	require.NoError(t, err)
	require.Equal(t, 4, rows)

	require.NoError(t, configs.Clear())

	n, err = configs.Count()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	rows, err = configs.OperandCount()
	require.NoError(t, err)
	require.Equal(t, 1, rows)
}

func TestModelConfigsCurrent(t *testing.T) {
	host := zmxtest.New()
	conn := zmx.NewConn(host)
	configs := lens.NewModelConfigs(conn)

	_, err := conn.InsertConfig(1)
	require.NoError(t, err)
	require.NoError(t, configs.SetCurrent(2))
	current, err := configs.Current()
	require.NoError(t, err)
	require.Equal(t, 2, current)
}
